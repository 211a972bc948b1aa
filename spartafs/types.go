// Package spartafs implements the SpartaDOS/BW-DOS filesystem found inside
// an atr.Image: sector-map chain traversal, directory walking, path
// resolution, and a from-scratch filesystem builder.
package spartafs

import "io"

// bootMagicOffset is the byte offset of the SpartaDOS/BW-DOS signature
// within sector 1.
const bootMagicOffset = 7

// bootMagic is the signature value at bootMagicOffset that marks a boot
// sector as SpartaDOS/BW-DOS.
const bootMagic = 0x80

// rootMapPointerOffset is the byte offset within sector 1 of the 16-bit LE
// pointer to the root directory's first map sector.
const rootMapPointerOffset = 0x0A

// dirEntrySize is the fixed size in bytes of one directory entry,
// including the leading header entry every directory stream carries.
const dirEntrySize = 23

// Directory entry flag bits.
const (
	flagInUse      = 0x08
	flagErased     = 0x10
	flagSubdir     = 0x20
)

// DirEntry is one decoded 23-byte directory slot.
type DirEntry struct {
	Name     string // decoded name, case as stored (not upper-folded)
	Flags    byte
	FirstMap int
	Size     int
	IsDir    bool
}

// FileKind distinguishes a regular file entry from a directory entry in a
// builder file list.
type FileKind int

// The two kinds of entry a file list can contain.
const (
	KindFile FileKind = iota
	KindDirectory
)

// ByteSource lazily opens the contents of a file-list entry. Builder input
// never needs the bytes staged anywhere in advance; the source is only
// opened when the builder is ready to copy its data into the image.
type ByteSource interface {
	Open() (io.ReadCloser, error)
}

// FileListEntry is one entry of builder input: a file or directory to place
// somewhere in the new filesystem. AtariPath is forward-slash separated,
// relative to the volume root ("" for the root itself); directories must
// appear before the entries they contain, matching the order a recursive
// host directory walk naturally produces.
type FileListEntry struct {
	AtariPath string
	Kind      FileKind
	Source    ByteSource // nil for directories
	Size      int64      // byte length for files; ignored for directories
}
