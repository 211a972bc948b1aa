// Package hostfs bridges the host filesystem and the builder's file-list
// input: a two-pass (directories-then-files) recursive directory walk, and
// the lazy byte-source implementations a file-list entry needs.
package hostfs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/atarifoundry/spartatr/ferrors"
	"github.com/atarifoundry/spartatr/spartafs"
)

// HostFile is a ByteSource backed by a path on the host filesystem, opened
// only when the builder is ready to copy its content.
type HostFile struct {
	Path string
}

// Open implements spartafs.ByteSource.
func (h HostFile) Open() (io.ReadCloser, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, ferrors.IoErrorf(err, "opening %s", h.Path)
	}
	return f, nil
}

// Buffer is a ByteSource backed by bytes already in memory, used when
// re-ingesting a file extracted from an existing image instead of staging
// it through a temporary file.
type Buffer struct {
	Data []byte
}

// Open implements spartafs.ByteSource.
func (b Buffer) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// WalkDir recursively walks root, returning an ordered file list suitable
// for spartafs.Build: at every directory level, subdirectories (and their
// entire contents, added recursively before moving on) precede the
// level's own files, matching the order a builder needs directories
// declared in before their contents reference them.
func WalkDir(root string) ([]spartafs.FileListEntry, error) {
	var out []spartafs.FileListEntry
	if err := walk(root, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(hostDir, atariPrefix string, out *[]spartafs.FileListEntry) error {
	entries, err := os.ReadDir(hostDir)
	if err != nil {
		return ferrors.IoErrorf(err, "reading directory %s", hostDir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var dirs, files []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else if e.Type().IsRegular() {
			files = append(files, e)
		}
	}

	for _, d := range dirs {
		atariPath := joinAtariPath(atariPrefix, d.Name())
		*out = append(*out, spartafs.FileListEntry{
			AtariPath: atariPath,
			Kind:      spartafs.KindDirectory,
		})
		if err := walk(filepath.Join(hostDir, d.Name()), atariPath, out); err != nil {
			return err
		}
	}

	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			return ferrors.IoErrorf(err, "stat %s", filepath.Join(hostDir, f.Name()))
		}
		*out = append(*out, spartafs.FileListEntry{
			AtariPath: joinAtariPath(atariPrefix, f.Name()),
			Kind:      spartafs.KindFile,
			Source:    HostFile{Path: filepath.Join(hostDir, f.Name())},
			Size:      info.Size(),
		})
	}
	return nil
}

func joinAtariPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// AddPath produces the file-list entries for hostPath, a single file or a
// directory tree, placed at atariDest within the volume. Used by the "put"
// command to append a host path to an existing image's file list before a
// rebuild; unlike WalkDir, the result isn't rooted at "" but at the given
// destination path.
func AddPath(hostPath, atariDest string) ([]spartafs.FileListEntry, error) {
	info, err := os.Stat(hostPath)
	if err != nil {
		return nil, ferrors.IoErrorf(err, "stat %s", hostPath)
	}
	if !info.IsDir() {
		return []spartafs.FileListEntry{{
			AtariPath: atariDest,
			Kind:      spartafs.KindFile,
			Source:    HostFile{Path: hostPath},
			Size:      info.Size(),
		}}, nil
	}
	out := []spartafs.FileListEntry{{AtariPath: atariDest, Kind: spartafs.KindDirectory}}
	if err := walk(hostPath, atariDest, &out); err != nil {
		return nil, err
	}
	return out, nil
}
