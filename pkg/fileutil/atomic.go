// Package fileutil provides file system utilities: size-limited reads and
// atomic writes.
package fileutil

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// WriteAtomic streams the output of write into a temp file next to path and
// renames it over path once write succeeds. On any failure path is left
// untouched and the temp file is removed. The parent directory must exist.
func WriteAtomic(path string, perm os.FileMode, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".distcheck-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	committed = true
	return nil
}

// AtomicWriteFile writes data to path atomically with the given permissions.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return errors.Wrap(err, "writing temp file")
	})
}

// AtomicWriteJSON writes v as indented JSON with a trailing newline to path
// atomically, with 0644 permissions.
func AtomicWriteJSON(path string, v any) error {
	return WriteAtomic(path, 0644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "marshaling JSON")
	})
}

// AtomicWriteYAML writes v as YAML to path atomically, with 0644 permissions.
func AtomicWriteYAML(path string, v any) error {
	return WriteAtomic(path, 0644, func(w io.Writer) (err error) {
		// the yaml encoder panics on values it cannot represent, such as funcs
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("marshaling YAML: %v", r)
			}
		}()
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "marshaling YAML")
		}
		return errors.Wrap(enc.Close(), "marshaling YAML")
	})
}
