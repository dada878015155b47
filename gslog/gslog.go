// Package gslog wraps charmbracelet/log with the per-component logger and
// daily log-file naming conventions this repository's ground-station
// tooling uses.
package gslog

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// New returns a leveled logger tagged with component, writing to w. Pass
// os.Stderr for interactive tools, or an OpenDaily writer for daily log
// files.
func New(component string, w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
		Prefix:          component,
	})
	return l
}

// Default is the package-level logger used by callers that don't need a
// dedicated component tag; individual packages generally call New instead
// so log lines can be attributed to csp, ax100, or transport.
var Default = New("csplink", os.Stderr)

const dailyPattern = "csplink-%Y%m%d.log"

// dailyFile rotates the log to a new file once per UTC calendar day,
// reopened the first time a write crosses midnight.
type dailyFile struct {
	mu      sync.Mutex
	dir     string
	day     string
	current *os.File
}

// OpenDaily returns a Writer that rotates to a new file named
// csplink-YYYYMMDD.log under dir whenever the UTC date changes. Errors
// opening a day's file are reported through the returned error on first
// Write, not at construction.
func OpenDaily(dir string) io.WriteCloser {
	return &dailyFile{dir: dir}
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	today, err := strftime.Format(dailyPattern, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if today != d.day {
		if d.current != nil {
			_ = d.current.Close()
		}
		f, err := os.OpenFile(filepath.Join(d.dir, today), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		d.current = f
		d.day = today
	}
	return d.current.Write(p)
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return nil
	}
	return d.current.Close()
}
