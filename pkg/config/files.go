package config

import (
	"path/filepath"
	"runtime"
	"sort"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// homedirDir is mocked in tests so that the FileMap points at a fake home.
var homedirDir = homedir.Dir

// File is a single settings file that gets synced. Name is both the path of
// the file within the remote repository and its filename on the local
// machine. Dir is the local directory that holds the file.
type File struct {
	Name string
	Dir  string
}

// Path returns the local path of the file.
func (f File) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// FileMap is the fixed set of files that are synced between the local machine
// and the remote repository. It's built once at startup and is read-only
// afterwards.
type FileMap struct {
	files map[string]File
}

// NewFileMap returns the FileMap for a user whose home directory is `home`.
// `goos` selects the editor config layout, and follows the values of
// runtime.GOOS.
func NewFileMap(home, goos string) FileMap {
	editorUserDir := filepath.Join(home, ".config", "VSCodium", "User")
	if goos == "darwin" {
		editorUserDir = filepath.Join(home, "Library", "Application Support", "VSCodium", "User")
	}

	return FileMapOf(
		File{Name: "extensions.json", Dir: filepath.Join(home, ".vscode-oss", "extensions")},
		File{Name: "settings.json", Dir: editorUserDir},
		File{Name: ".gitconfig", Dir: home},
		File{Name: ".zshrc", Dir: home},
		File{Name: ".bashrc", Dir: home},
	)
}

// FileMapOf builds a FileMap from an explicit list of files. If two files
// share a name, the last one wins.
func FileMapOf(files ...File) FileMap {
	m := FileMap{files: map[string]File{}}
	for _, f := range files {
		m.files[f.Name] = f
	}
	return m
}

// DefaultFileMap returns the FileMap for the current user.
func DefaultFileMap() (FileMap, error) {
	home, err := homedirDir()
	if err != nil {
		return FileMap{}, errors.WithContext(err, "get home directory")
	}
	return NewFileMap(home, runtime.GOOS), nil
}

// Get returns the file with the given name.
func (m FileMap) Get(name string) (File, bool) {
	f, ok := m.files[name]
	return f, ok
}

// Entries returns every file sorted by name.
func (m FileMap) Entries() []File {
	var entries []File
	for _, f := range m.files {
		entries = append(entries, f)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Names returns the name of every file, sorted.
func (m FileMap) Names() []string {
	var names []string
	for _, f := range m.Entries() {
		names = append(names, f.Name)
	}
	return names
}

// Len returns the number of files.
func (m FileMap) Len() int {
	return len(m.files)
}
