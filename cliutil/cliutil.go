// Package cliutil contains the small set of host-facing helpers the
// command tree needs: stdin/stdout passthrough, overwrite-guarded writes,
// and the backup-then-replace sequence used by every command that
// rewrites an existing image in place.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atarifoundry/spartatr/ferrors"
)

// Globals holds process-wide CLI settings threaded through commands,
// in place of reading them back out of the environment.
type Globals struct {
	Verbose bool
}

// FileContentsOrStdIn returns the contents of a file, unless the name
// is "-", in which case it reads from stdin.
func FileContentsOrStdIn(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, ferrors.IoErrorf(err, "reading stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, ferrors.IoErrorf(err, "reading %s", name)
	}
	return data, nil
}

// WriteOutput writes contents to filename, unless the name is "-", in
// which case it writes to stdout. An existing file at filename is only
// overwritten when force is true.
func WriteOutput(filename string, contents []byte, force bool) error {
	if filename == "-" {
		if _, err := os.Stdout.Write(contents); err != nil {
			return ferrors.IoErrorf(err, "writing stdout")
		}
		return nil
	}
	if !force {
		if _, err := os.Stat(filename); !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot overwrite file %q without --force (-f)", filename)
		}
	}
	if err := os.WriteFile(filename, contents, 0666); err != nil {
		return ferrors.IoErrorf(err, "writing %s", filename)
	}
	return nil
}

// ReplaceWithBackup implements the unconditional backup-then-replace
// sequence every image-modifying command uses: the existing file at path
// is copied to path+".bak", then newData is written to a temp file in the
// same directory and renamed over path. Either both the backup and the new
// file exist afterward, or path is left untouched.
func ReplaceWithBackup(path string, newData []byte) error {
	old, err := os.ReadFile(path)
	if err != nil {
		return ferrors.IoErrorf(err, "reading %s", path)
	}

	backupPath := path + ".bak"
	if err := os.WriteFile(backupPath, old, 0666); err != nil {
		return ferrors.IoErrorf(err, "writing backup %s", backupPath)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return ferrors.IoErrorf(err, "creating temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(newData); err != nil {
		tmp.Close()
		return ferrors.IoErrorf(err, "writing %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return ferrors.IoErrorf(err, "closing %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return ferrors.IoErrorf(err, "renaming %s to %s", tmpPath, path)
	}
	return nil
}
