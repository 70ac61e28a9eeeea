package loader

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &memFileInfo{name: path, size: int64(len(data))}, nil
}

type memFileInfo struct {
	name string
	size int64
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (fi *memFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *memFileInfo) IsDir() bool        { return false }
func (fi *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
evil = false

[evil]
initial-mode = "insert"

[indent]
unit = "    "
tab-width = 4
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	require.NoError(t, err)

	editor, ok := config["editor"].(map[string]any)
	require.True(t, ok, "editor section missing: %v", config)
	assert.Equal(t, false, editor["evil"])

	evil := config["evil"].(map[string]any)
	assert.Equal(t, "insert", evil["initial-mode"])

	indent := config["indent"].(map[string]any)
	assert.Equal(t, int64(4), indent["tab-width"])
}

func TestTOMLLoader_LoadMissingFile(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml")
	config, err := loader.Load()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\nevil = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "/bad.toml")
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	loader := NewTOMLLoader("")
	config, err := loader.LoadFromReader(strings.NewReader(`line-ending = "crlf"`))
	require.NoError(t, err)
	assert.Equal(t, "crlf", config["line-ending"])
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
		{ParseError{Path: "a", Line: 3, Message: "m"}, "parse error in a at line 3: m"},
		{ParseError{Path: "a", Line: 3, Column: 5, Message: "m"}, "parse error in a at line 3, column 5: m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/evil/config.toml", GlobalPath())
	assert.Equal(t, "/work/.evil/config.toml", WorkspacePath("/work"))
	assert.Empty(t, WorkspacePath(""))
}
