package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Art0r/settings-automation/pkg/transfer"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expMode  Mode
		expError string
	}{
		{input: "download", expMode: ModeDownload},
		{input: "upload", expMode: ModeUpload},
		{input: "Upload", expError: `must be "download" or "upload"`},
		{input: "", expError: `must be "download" or "upload"`},
	}

	for _, test := range tests {
		mode, err := ParseMode(test.input)
		assert.Equal(t, test.expMode, mode, test.input)
		if test.expError == "" {
			assert.NoError(t, err, test.input)
		} else {
			assert.EqualError(t, err, test.expError, test.input)
		}
	}
}

func TestModeFlagValue(t *testing.T) {
	mode := DefaultMode
	assert.Equal(t, "download", mode.String())

	assert.NoError(t, mode.Set("upload"))
	assert.Equal(t, ModeUpload, mode)
	assert.Equal(t, transfer.Upload, mode.Direction())

	// An invalid value leaves the mode unchanged.
	assert.Error(t, mode.Set("sideways"))
	assert.Equal(t, ModeUpload, mode)

	assert.NoError(t, mode.Set("download"))
	assert.Equal(t, transfer.Download, mode.Direction())
}
