// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package store caches the program text between sessions, best effort.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store holds a single program text.
type Store interface {
	// Load returns the cached program, or "" if none was saved.
	Load() (program string, err error)
	// Save replaces the cached program.
	Save(program string) (err error)
}

// File stores the program in a single file.
type File struct {
	Path string
}

var _ Store = &File{}

// DefaultPath is the cache file under the user cache directory.
func DefaultPath() (path string, err error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return
	}

	path = filepath.Join(dir, "simdesk", "program.asm")
	return
}

func (file *File) Load() (program string, err error) {
	data, err := os.ReadFile(file.Path)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	program = string(data)
	return
}

func (file *File) Save(program string) (err error) {
	err = os.MkdirAll(filepath.Dir(file.Path), 0755)
	if err != nil {
		return
	}

	return os.WriteFile(file.Path, []byte(program), 0644)
}

// Memory keeps the program in memory only.
type Memory struct {
	Program string
}

var _ Store = &Memory{}

func (mem *Memory) Load() (program string, err error) {
	program = mem.Program
	return
}

func (mem *Memory) Save(program string) (err error) {
	mem.Program = program
	return
}
