package spartafs

import (
	"strings"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/ferrors"
)

// RootMap returns the root directory's first map sector, read from the
// image's boot sector. It returns an UnsupportedFilesystem error if the
// image isn't SpartaDOS/BW-DOS.
func RootMap(img *atr.Image) (int, error) {
	boot, err := img.Sector(1)
	if err != nil {
		return 0, err
	}
	if len(boot) <= bootMagicOffset || boot[bootMagicOffset] != bootMagic {
		return 0, ferrors.UnsupportedFilesystemf("not a SpartaDOS/BW-DOS image")
	}
	return int(boot[rootMapPointerOffset]) | int(boot[rootMapPointerOffset+1])<<8, nil
}

// BootAddr returns the load address Build stamped into the boot record, so
// a rebuild (resize, sectorsize conversion, put) can preserve it without
// the caller having to track it separately.
func BootAddr(img *atr.Image) (uint16, error) {
	boot, err := img.Sector(1)
	if err != nil {
		return 0, err
	}
	return uint16(boot[bootAddrOffset]) | uint16(boot[bootAddrOffset+1])<<8, nil
}

// Resolve walks path (forward-slash separated, case-insensitive) starting
// at the directory rooted at root, returning the terminal entry. Spaces in
// on-disk names never appear in decoded names (see decodeName), so they
// play no part in matching.
func Resolve(img *atr.Image, root int, path string) (DirEntry, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return DirEntry{}, ferrors.NotFoundf("empty path")
	}
	return resolveComponents(img, root, strings.Split(path, "/"))
}

func resolveComponents(img *atr.Image, dirMap int, components []string) (DirEntry, error) {
	entries, _ := ReadDir(img, dirMap)

	want := strings.ToUpper(components[0])
	for _, e := range entries {
		if strings.ToUpper(e.Name) != want {
			continue
		}
		if len(components) == 1 {
			return e, nil
		}
		if !e.IsDir {
			return DirEntry{}, ferrors.NotFoundf("%q is not a directory", e.Name)
		}
		return resolveComponents(img, e.FirstMap, components[1:])
	}
	return DirEntry{}, ferrors.NotFoundf("%q not found", components[0])
}
