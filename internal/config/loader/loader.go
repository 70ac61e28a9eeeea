// Package loader reads the evil configuration files and EVIL_* environment
// variables into nested maps keyed like the setting registry.
package loader

import (
	"io/fs"
	"os"
)

// FileSystem reads configuration files. Tests substitute an in-memory
// implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return osFS{}
}
