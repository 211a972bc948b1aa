package hostfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/atascii"
	"github.com/atarifoundry/spartatr/ferrors"
	"github.com/atarifoundry/spartatr/spartafs"
)

// SanitizeComponent rejects a decoded directory-entry name that would
// escape the output root if used as a path component: empty names, ".",
// "..", and anything containing a path separator. Decoded SpartaDOS names
// can never contain '/' (decodeName maps it to '_'), but the check is
// cheap and the contract is worth enforcing at the boundary regardless.
func SanitizeComponent(name string) error {
	if name == "" || name == "." || name == ".." {
		return ferrors.ImageFormatf("unsafe path component %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return ferrors.ImageFormatf("unsafe path component %q", name)
	}
	return nil
}

// ExtractOptions controls the optional ATASCII-to-UTF-8 transcoding
// ExtractTree applies to every extracted file's content.
type ExtractOptions struct {
	ToUTF8   bool
	SevenBit bool
}

// ExtractTree recursively extracts every live entry of the directory
// rooted at firstMap into outDir on the host, creating subdirectories as
// needed. A file that reads back shorter than its directory size is logged
// as a warning to spartafs.Logger and does not abort the walk; extraction
// continues with whatever data was recovered.
func ExtractTree(img *atr.Image, firstMap int, outDir string, opts ExtractOptions) error {
	entries, _ := spartafs.ReadDir(img, firstMap)
	for _, e := range entries {
		if err := SanitizeComponent(e.Name); err != nil {
			return err
		}
		hostPath := filepath.Join(outDir, e.Name)

		if e.IsDir {
			if err := os.MkdirAll(hostPath, 0777); err != nil {
				return ferrors.IoErrorf(err, "creating directory %s", hostPath)
			}
			if err := ExtractTree(img, e.FirstMap, hostPath, opts); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(hostPath), 0777); err != nil {
			return ferrors.IoErrorf(err, "creating directory %s", filepath.Dir(hostPath))
		}
		data, _ := spartafs.ReadChain(img, e.FirstMap, e.Size)
		if len(data) < e.Size && spartafs.Logger != nil {
			spartafs.Logger.Printf("warning: %s: read %d of %d bytes", hostPath, len(data), e.Size)
		}
		if opts.ToUTF8 {
			converted, err := atascii.DecodeATASCIIToUTF8(data, opts.SevenBit)
			if err != nil {
				return err
			}
			data = converted
		}
		if err := os.WriteFile(hostPath, data, 0666); err != nil {
			return ferrors.IoErrorf(err, "writing %s", hostPath)
		}
	}
	return nil
}

// RebuildOptions controls the optional re-encoding pass ImageToFileList
// applies while pulling an existing image's files back into a file list,
// ahead of a full rebuild (sectorsize, or resize with a transcoding flag).
type RebuildOptions struct {
	Reencode bool // round-trip payload bytes through ATASCII->UTF8->ATASCII
	SevenBit bool // with Reencode, strip the high bit instead of round-tripping it
}

// ImageToFileList walks the live directory tree rooted at firstMap, in
// img, into the file-list shape spartafs.Build expects, so the image can
// be rebuilt at a new sector size or sector count. File content is read
// fully into memory (in-memory Buffer sources), per spec.md §9's "no
// temp-directory staging" design note: the original add_to_atr/convertatr
// tools stage through /tmp for exactly this step.
func ImageToFileList(img *atr.Image, firstMap int, opts RebuildOptions) ([]spartafs.FileListEntry, error) {
	var out []spartafs.FileListEntry
	if err := imageToFileList(img, firstMap, "", opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func imageToFileList(img *atr.Image, firstMap int, atariPrefix string, opts RebuildOptions, out *[]spartafs.FileListEntry) error {
	entries, _ := spartafs.ReadDir(img, firstMap)
	for _, e := range entries {
		if err := SanitizeComponent(e.Name); err != nil {
			return err
		}
		atariPath := joinAtariPath(atariPrefix, e.Name)

		if e.IsDir {
			*out = append(*out, spartafs.FileListEntry{AtariPath: atariPath, Kind: spartafs.KindDirectory})
			if err := imageToFileList(img, e.FirstMap, atariPath, opts, out); err != nil {
				return err
			}
			continue
		}

		data, _ := spartafs.ReadChain(img, e.FirstMap, e.Size)
		if opts.Reencode {
			utf8Data, err := atascii.DecodeATASCIIToUTF8(data, opts.SevenBit)
			if err != nil {
				return err
			}
			data, err = atascii.EncodeUTF8ToATASCII(utf8Data)
			if err != nil {
				return err
			}
		}
		*out = append(*out, spartafs.FileListEntry{
			AtariPath: atariPath,
			Kind:      spartafs.KindFile,
			Source:    Buffer{Data: data},
			Size:      int64(len(data)),
		})
	}
	return nil
}
