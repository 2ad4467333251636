package sync

import (
	"fmt"

	"github.com/Art0r/settings-automation/pkg/transfer"
)

// Mode selects what a run does.
type Mode string

const (
	// ModeDownload copies the remote settings onto the local machine.
	ModeDownload Mode = "download"

	// ModeUpload copies the local settings into the remote repository and
	// publishes them.
	ModeUpload Mode = "upload"
)

// DefaultMode is used when no mode is requested.
const DefaultMode = ModeDownload

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDownload, ModeUpload:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("must be %q or %q", ModeDownload, ModeUpload)
	}
}

// String implements pflag.Value.
func (m Mode) String() string {
	return string(m)
}

// Set implements pflag.Value, so that invalid modes are rejected while the
// flags are parsed.
func (m *Mode) Set(s string) error {
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Type implements pflag.Value.
func (m Mode) Type() string {
	return "download|upload"
}

// Direction returns the direction that files are copied in.
func (m Mode) Direction() transfer.Direction {
	if m == ModeUpload {
		return transfer.Upload
	}
	return transfer.Download
}
