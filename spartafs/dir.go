package spartafs

import "github.com/atarifoundry/spartatr/atr"

// maxDirBytes bounds how much of a directory's content stream ReadDir will
// pull in. Real directories are nearly always far smaller; this exists only
// as the upper bound ReadChain's maxBytes parameter requires, matching the
// source tool's own fixed 65536-byte scratch buffer for directory reads.
const maxDirBytes = 65536

// ReadDir decodes the directory stream rooted at firstMap into its live
// entries, skipping unused and erased slots and stopping at the first
// all-zero flags byte. The stream's first 23-byte slot is the directory's
// own header entry and is never yielded as a child.
func ReadDir(img *atr.Image, firstMap int) ([]DirEntry, error) {
	data, warning := ReadChain(img, firstMap, maxDirBytes)

	var entries []DirEntry
	for i := dirEntrySize; i+dirEntrySize <= len(data); i += dirEntrySize {
		entry := data[i : i+dirEntrySize]
		flags := entry[0]
		if flags == 0 {
			break
		}
		if flags&flagInUse == 0 {
			continue
		}
		if flags&flagErased != 0 {
			continue
		}
		entries = append(entries, DirEntry{
			Name:     decodeName(entry[6:17]),
			Flags:    flags,
			FirstMap: int(entry[1]) | int(entry[2])<<8,
			Size:     int(entry[3]) | int(entry[4])<<8 | int(entry[5])<<16,
			IsDir:    flags&flagSubdir != 0,
		})
	}
	return entries, warning
}
