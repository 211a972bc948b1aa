package cmd

import (
	"fmt"
	"io"

	"github.com/atarifoundry/spartatr/atascii"
	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/ferrors"
	"github.com/atarifoundry/spartatr/hostfs"
	"github.com/atarifoundry/spartatr/spartafs"
)

// readAllClose reads rc to EOF and closes it regardless of the read's
// outcome.
func readAllClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, ferrors.IoErrorf(err, "reading content")
	}
	return data, nil
}

// transcodeFileListToATASCII replaces every file entry's source in files
// with an in-memory buffer already converted from UTF-8 to ATASCII, so
// spartafs.Build never has to know transcoding happened. Directory
// entries pass through untouched.
func transcodeFileListToATASCII(files []spartafs.FileListEntry) error {
	for i, f := range files {
		if f.Kind != spartafs.KindFile {
			continue
		}
		rc, err := f.Source.Open()
		if err != nil {
			return err
		}
		data, err := readAllClose(rc)
		if err != nil {
			return err
		}
		converted, err := atascii.EncodeUTF8ToATASCII(data)
		if err != nil {
			return err
		}
		files[i].Source = hostfs.Buffer{Data: converted}
		files[i].Size = int64(len(converted))
	}
	return nil
}

// rebuildWithTranscode pulls every live file out of img, optionally
// round-tripping payload bytes through ATASCII<->UTF-8, and rebuilds a
// fresh image at the given sector size and count with the original boot
// address preserved. Used by sectorsize, and by resize when a transcoding
// flag forces a full rebuild rather than a byte-faithful repack.
func rebuildWithTranscode(img *atr.Image, newSectorSize, newSectorCount int, reencode, sevenBit bool) (*atr.Image, error) {
	root, err := spartafs.RootMap(img)
	if err != nil {
		return nil, err
	}
	bootAddr, err := spartafs.BootAddr(img)
	if err != nil {
		return nil, err
	}
	files, err := hostfs.ImageToFileList(img, root, hostfs.RebuildOptions{Reencode: reencode, SevenBit: sevenBit})
	if err != nil {
		return nil, err
	}
	return spartafs.Build(newSectorSize, newSectorCount, bootAddr, files)
}

// parseSectorCount parses and range-checks a sector-count command argument.
func parseSectorCount(arg string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid sector count %q", arg)
	}
	return n, nil
}

// parseSectorSize parses and validates a sector-size command argument.
func parseSectorSize(arg string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || (n != 128 && n != 256) {
		return 0, fmt.Errorf("invalid sector size %q: must be 128 or 256", arg)
	}
	return n, nil
}
