package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile(t *testing.T) {
	assert := assert.New(t)

	file := &File{Path: filepath.Join(t.TempDir(), "cache", "program.asm")}

	program, err := file.Load()
	assert.NoError(err)
	assert.Equal("", program)

	err = file.Save("MVI A, 10H\n\nHLT")
	assert.NoError(err)

	program, err = file.Load()
	assert.NoError(err)
	assert.Equal("MVI A, 10H\n\nHLT", program)

	data, err := os.ReadFile(file.Path)
	assert.NoError(err)
	assert.Equal("MVI A, 10H\n\nHLT", string(data))
}

func TestFileUnwritable(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	assert.NoError(os.WriteFile(blocker, nil, 0644))

	file := &File{Path: filepath.Join(blocker, "program.asm")}
	assert.Error(file.Save("NOP"))
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.Save("NOP"))

	program, err := mem.Load()
	assert.NoError(err)
	assert.Equal("NOP", program)
}

func TestDefaultPath(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultPath()
	assert.NoError(err)
	assert.Equal("program.asm", filepath.Base(path))
	assert.Equal("simdesk", filepath.Base(filepath.Dir(path)))
}
