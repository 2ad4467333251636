// Package transfer copies settings files between a clone of the remote
// repository and their local paths.
package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
)

// Direction is the direction files are copied in.
type Direction int

const (
	// Download copies files from the working directory to their local paths.
	Download Direction = iota

	// Upload copies files from their local paths to the working directory.
	Upload
)

func (d Direction) String() string {
	switch d {
	case Download:
		return "download"
	case Upload:
		return "upload"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Result describes the copy of a single file.
type Result struct {
	Name        string
	Source      string
	Destination string
	Bytes       int64
	Err         error
}

// Files copies every file in `files` between workDir and the file's local
// directory. It stops at the first file that fails, and returns the results
// of every file that was attempted, including the failed one.
func Files(fs afero.Fs, files config.FileMap, workDir string, direction Direction) ([]Result, error) {
	var results []Result
	for _, f := range files.Entries() {
		remotePath := filepath.Join(workDir, f.Name)
		src, dst := remotePath, f.Path()
		if direction == Upload {
			src, dst = f.Path(), remotePath
		}

		n, err := Copy(fs, src, dst)
		results = append(results, Result{
			Name:        f.Name,
			Source:      src,
			Destination: dst,
			Bytes:       n,
			Err:         err,
		})
		if err != nil {
			return results, errors.WithContext(err, fmt.Sprintf("copy %s", f.Name))
		}

		log.WithFields(log.Fields{
			"file":  f.Name,
			"dst":   dst,
			"bytes": n,
		}).Debug("Copied file")
	}
	return results, nil
}

// Copy replaces the contents of dst with the contents of src. dst is created
// if it doesn't exist, but its parent directory must already exist.
func Copy(fs afero.Fs, src, dst string) (n int64, err error) {
	srcFile, err := fs.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.FileNotFound{Path: src}
		}
		return 0, errors.WithContext(err, "open source")
	}
	defer srcFile.Close()

	dstDir := filepath.Dir(dst)
	info, err := fs.Stat(dstDir)
	switch {
	case os.IsNotExist(err):
		return 0, errors.FileNotFound{Path: dstDir}
	case err != nil:
		return 0, errors.WithContext(err, "stat destination directory")
	case !info.IsDir():
		return 0, fmt.Errorf("%q is not a directory", dstDir)
	}

	dstFile, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.WithContext(err, "open destination")
	}
	defer func() {
		if closeErr := dstFile.Close(); closeErr != nil && err == nil {
			err = errors.WithContext(closeErr, "close destination")
		}
	}()

	n, err = io.Copy(dstFile, srcFile)
	if err != nil {
		return n, errors.WithContext(err, "copy")
	}
	return n, nil
}
