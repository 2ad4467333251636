package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Art0r/settings-automation/pkg/errors"
)

func TestNewFileMap(t *testing.T) {
	tests := []struct {
		name string
		goos string
		exp  []File
	}{
		{
			name: "Linux",
			goos: "linux",
			exp: []File{
				{Name: ".bashrc", Dir: "/home/user"},
				{Name: ".gitconfig", Dir: "/home/user"},
				{Name: ".zshrc", Dir: "/home/user"},
				{Name: "extensions.json", Dir: "/home/user/.vscode-oss/extensions"},
				{Name: "settings.json", Dir: "/home/user/.config/VSCodium/User"},
			},
		},
		{
			name: "Darwin",
			goos: "darwin",
			exp: []File{
				{Name: ".bashrc", Dir: "/home/user"},
				{Name: ".gitconfig", Dir: "/home/user"},
				{Name: ".zshrc", Dir: "/home/user"},
				{Name: "extensions.json", Dir: "/home/user/.vscode-oss/extensions"},
				{Name: "settings.json", Dir: "/home/user/Library/Application Support/VSCodium/User"},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			files := NewFileMap("/home/user", test.goos)
			assert.Equal(t, test.exp, files.Entries())
			assert.Equal(t, 5, files.Len())
		})
	}
}

func TestFileMapGet(t *testing.T) {
	files := NewFileMap("/home/user", "linux")

	f, ok := files.Get("settings.json")
	require.True(t, ok)
	assert.Equal(t, "/home/user/.config/VSCodium/User/settings.json", f.Path())

	_, ok = files.Get("init.vim")
	assert.False(t, ok)
}

func TestFileMapOfDuplicates(t *testing.T) {
	files := FileMapOf(
		File{Name: "a", Dir: "/first"},
		File{Name: "a", Dir: "/second"},
		File{Name: "b", Dir: "/first"},
	)
	assert.Equal(t, []string{"a", "b"}, files.Names())

	f, _ := files.Get("a")
	assert.Equal(t, "/second", f.Dir)
}

func TestEntriesDoesNotExposeState(t *testing.T) {
	files := NewFileMap("/home/user", "linux")
	entries := files.Entries()
	entries[0].Dir = "/tmp"

	f, _ := files.Get(".bashrc")
	assert.Equal(t, "/home/user", f.Dir)
}

func TestDefaultFileMap(t *testing.T) {
	homedirDir = func() (string, error) { return "/fake-home", nil }
	files, err := DefaultFileMap()
	assert.NoError(t, err)
	f, ok := files.Get(".gitconfig")
	assert.True(t, ok)
	assert.Equal(t, "/fake-home/.gitconfig", f.Path())

	homedirDir = func() (string, error) { return "", errors.New("no home") }
	_, err = DefaultFileMap()
	assert.EqualError(t, err, "get home directory: no home")
}
