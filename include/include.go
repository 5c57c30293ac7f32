// Package include provides loaders for ${!file.inc} template includes.
package include

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/randalmurphal/stemplate"
)

// Dir loads include files from a directory. Include names resolve relative
// to the directory and may not escape it: absolute names and names with
// ".." components are rejected.
type Dir string

// Load reads the named include file from the directory.
func (d Dir) Load(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("include name %q escapes the include directory", name)
	}
	data, err := os.ReadFile(filepath.Join(string(d), name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FS returns a loader that reads include files from fsys. Useful with
// embed.FS to compile include fragments into the binary.
func FS(fsys fs.FS) stemplate.Loader {
	return fsLoader{fsys: fsys}
}

type fsLoader struct {
	fsys fs.FS
}

func (l fsLoader) Load(name string) (string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Map serves include content from memory, keyed by include name. The zero
// Map is usable and fails every load.
type Map map[string]string

// Load returns the content stored under name. A missing name fails with an
// error satisfying errors.Is(err, fs.ErrNotExist), matching the behavior
// of the file-backed loaders.
func (m Map) Load(name string) (string, error) {
	content, ok := m[name]
	if !ok {
		return "", fmt.Errorf("include %q: %w", name, fs.ErrNotExist)
	}
	return content, nil
}

var (
	_ stemplate.Loader = Dir("")
	_ stemplate.Loader = Map(nil)
)
