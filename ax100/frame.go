package ax100

// Frame is the decoded result of an AX100 link frame: the application
// payload after every configured layer has been stripped and verified,
// plus diagnostics a caller running in verbose mode may want to log.
type Frame struct {
	Payload []byte

	// ReedSolomonCorrected is the number of symbol errors the RS layer
	// fixed, when Config.ReedSolomon is enabled; zero otherwise.
	ReedSolomonCorrected int
	// GolayErrors is the number of bit errors corrected in the length
	// field, when Config.LengthField is enabled.
	GolayErrors int
}
