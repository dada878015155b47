package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsradio/csplink/config"
)

func TestParseImageSelect(t *testing.T) {
	cases := []struct {
		in   string
		want config.ImageSelect
	}{
		{"auto", config.ImageAuto},
		{"AUTO", config.ImageAuto},
		{"a", config.ImageA},
		{"A", config.ImageA},
		{"b", config.ImageB},
		{"B", config.ImageB}, // the fixed case: original_source compares image_sel.lower == 'b' without calling it
	}
	for _, c := range cases {
		got, err := config.ParseImageSelect(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseImageSelectRejectsInvalid(t *testing.T) {
	_, err := config.ParseImageSelect("c")
	require.Error(t, err)
}

func TestBootCmdValueForceOnlyAppliesToExplicitImage(t *testing.T) {
	auto := config.BootCmd{Image: config.ImageAuto, ForceSelection: true}
	assert.Equal(t, uint16(config.ImageAuto), auto.Value())

	forced := config.BootCmd{Image: config.ImageB, ForceSelection: true}
	assert.Equal(t, uint16(config.ImageB)|config.BootParamFlagForce, forced.Value())
}

func TestBootCmdValueExtendedOverridesImage(t *testing.T) {
	cmd := config.BootCmd{Image: config.ImageB, ForceSelection: true, TimeoutExtended: true}
	assert.Equal(t, config.BootParamFlagExtended, cmd.Value())
}
