package spartafs

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/ferrors"
)

// bootAddrOffset is the byte offset within sector 1 where Build stamps the
// caller-supplied load address, immediately after the filesystem-type
// magic byte. The builder only stamps this field; it never assembles or
// validates the 6502 boot code that would use it.
const bootAddrOffset = 8

// buildNode is one node of the in-memory tree Build assembles from a flat
// file list before laying anything out on sectors.
type buildNode struct {
	encName  [11]byte
	dispName string
	kind     FileKind
	source   ByteSource
	size     int64
	children []*buildNode

	firstMap int
	byteSize int
}

// Build lays out a brand-new SpartaDOS/BW-DOS filesystem of sectorSize
// bytes per sector and sectorCount sectors, containing files, and stamps
// bootAddr into the boot record. Sizing and name validation happen before
// any sector is allocated; allocation and population then happen together,
// directory-content-last, since a directory's own header entry must record
// its own first map sector and size, known only once its content has been
// allocated.
func Build(sectorSize, sectorCount int, bootAddr uint16, files []FileListEntry) (*atr.Image, error) {
	if sectorSize != 128 && sectorSize != 256 {
		return nil, ferrors.ImageFormatf("unsupported sector size %d", sectorSize)
	}
	reserved := bootSectors + bitmapSectorCount(sectorSize, sectorCount)
	if sectorCount <= reserved {
		return nil, ferrors.ImageFormatf("sector count %d leaves no room for data sectors", sectorCount)
	}

	root, err := buildTree(files)
	if err != nil {
		return nil, err
	}

	img := atr.New(sectorSize, sectorCount)
	bm := newBitmap(sectorSize, sectorCount)

	if err := populate(img, bm, root); err != nil {
		return nil, err
	}
	if err := writeBootSector(img, bootAddr, root.firstMap); err != nil {
		return nil, err
	}
	if err := bm.writeTo(img); err != nil {
		return nil, err
	}
	return img, nil
}

// buildTree turns the flat, ordered file list into a tree, upper-folding
// and 8.3-encoding every name and rejecting duplicate sibling names before
// any sector allocation is attempted.
func buildTree(files []FileListEntry) (*buildNode, error) {
	root := &buildNode{kind: KindDirectory}
	nodesByPath := map[string]*buildNode{"": root}

	for _, f := range files {
		if f.AtariPath == "" {
			// The first entry may be a root marker; later empty paths are
			// ignored the same way, since the root always exists implicitly.
			continue
		}
		parentPath, name := splitAtariPath(f.AtariPath)
		parent, ok := nodesByPath[parentPath]
		if !ok {
			return nil, ferrors.ImageFormatf("parent directory %q not declared before %q", parentPath, f.AtariPath)
		}

		enc, err := encodeComponent8dot3(name)
		if err != nil {
			return nil, err
		}
		disp := displayName(enc)
		for _, sibling := range parent.children {
			if strings.EqualFold(sibling.dispName, disp) {
				return nil, ferrors.DuplicateNamef("duplicate name %q in directory %q", disp, parentPath)
			}
		}

		node := &buildNode{encName: enc, dispName: disp, kind: f.Kind, source: f.Source, size: f.Size}
		parent.children = append(parent.children, node)
		if f.Kind == KindDirectory {
			nodesByPath[f.AtariPath] = node
		}
	}
	return root, nil
}

// splitAtariPath splits a forward-slash-separated Atari path into its
// parent path and final component.
func splitAtariPath(path string) (parent, name string) {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return "", path
}

// populate allocates and writes a node's content, recursing into children
// first so a directory's own entries can record each child's real first
// map sector and byte size.
func populate(img *atr.Image, bm *bitmap, n *buildNode) error {
	if n.kind == KindFile {
		return populateFile(img, bm, n)
	}
	for _, c := range n.children {
		if err := populate(img, bm, c); err != nil {
			return err
		}
	}
	return populateDirectory(img, bm, n)
}

func populateFile(img *atr.Image, bm *bitmap, n *buildNode) error {
	mapNums, dataNums, err := allocateChain(bm, img.SectorSize, int(n.size))
	if err != nil {
		return err
	}
	if err := linkChain(img, mapNums, dataNums); err != nil {
		return err
	}

	rc, err := n.source.Open()
	if err != nil {
		return ferrors.IoErrorf(err, "opening source for %q", n.dispName)
	}
	defer rc.Close()

	if err := fillData(img, dataNums, rc, int(n.size)); err != nil {
		return err
	}

	n.firstMap = mapNums[0]
	n.byteSize = int(n.size)
	return nil
}

func populateDirectory(img *atr.Image, bm *bitmap, n *buildNode) error {
	content := make([]byte, dirEntrySize*(1+len(n.children)))
	for i, c := range n.children {
		writeDirEntry(content[dirEntrySize*(i+1):], c)
	}

	mapNums, dataNums, err := allocateChain(bm, img.SectorSize, len(content))
	if err != nil {
		return err
	}
	if err := linkChain(img, mapNums, dataNums); err != nil {
		return err
	}

	n.firstMap = mapNums[0]
	n.byteSize = len(content)
	writeDirHeader(content, n.firstMap, n.byteSize)

	if err := fillData(img, dataNums, strings.NewReader(string(content)), len(content)); err != nil {
		return err
	}
	return nil
}

// writeDirHeader fills a directory stream's own leading 23-byte entry: the
// directory's own first map sector and total byte size.
func writeDirHeader(content []byte, firstMap, size int) {
	content[0] = flagInUse
	content[1] = byte(firstMap)
	content[2] = byte(firstMap >> 8)
	content[3] = byte(size)
	content[4] = byte(size >> 8)
	content[5] = byte(size >> 16)
	for i := 6; i < 17; i++ {
		content[i] = ' '
	}
}

// writeDirEntry fills one 23-byte child entry.
func writeDirEntry(entry []byte, n *buildNode) {
	flags := byte(flagInUse)
	if n.kind == KindDirectory {
		flags |= flagSubdir
	}
	entry[0] = flags
	entry[1] = byte(n.firstMap)
	entry[2] = byte(n.firstMap >> 8)
	entry[3] = byte(n.byteSize)
	entry[4] = byte(n.byteSize >> 8)
	entry[5] = byte(n.byteSize >> 16)
	copy(entry[6:17], n.encName[:])
	for i := 17; i < dirEntrySize; i++ {
		entry[i] = 0
	}
}

// writeBootSector stamps the filesystem magic, the root directory's map
// pointer, and the caller's boot address into sector 1.
func writeBootSector(img *atr.Image, bootAddr uint16, rootMap int) error {
	boot, err := img.Sector(1)
	if err != nil {
		return err
	}
	boot[bootMagicOffset] = bootMagic
	binary.LittleEndian.PutUint16(boot[bootAddrOffset:bootAddrOffset+2], bootAddr)
	boot[rootMapPointerOffset] = byte(rootMap)
	boot[rootMapPointerOffset+1] = byte(rootMap >> 8)
	return nil
}

// allocateChain allocates the map and data sectors needed to hold
// totalSize bytes, without writing anything into them yet. A zero-byte
// stream still gets one map sector, per the filesystem's own convention
// that every file, even an empty one, has a map chain.
func allocateChain(bm *bitmap, sectorSize, totalSize int) (mapNums, dataNums []int, err error) {
	mapCapacity := (sectorSize - mapHeaderBytes) / 2
	dataSectors := ceilDiv(totalSize, sectorSize)
	mapSectors := ceilDiv(dataSectors, mapCapacity)
	if mapSectors == 0 {
		mapSectors = 1
	}

	mapNums = make([]int, mapSectors)
	for i := range mapNums {
		if mapNums[i], err = bm.allocate(); err != nil {
			return nil, nil, err
		}
	}
	dataNums = make([]int, dataSectors)
	for i := range dataNums {
		if dataNums[i], err = bm.allocate(); err != nil {
			return nil, nil, err
		}
	}
	return mapNums, dataNums, nil
}

// linkChain zeroes and wires up the map sectors in mapNums (next/prev
// pointers and their slice of dataNums pointers), without touching the
// data sectors' payload bytes.
func linkChain(img *atr.Image, mapNums, dataNums []int) error {
	mapCapacity := (img.SectorSize - mapHeaderBytes) / 2
	for mi, mapNum := range mapNums {
		m, err := img.Sector(mapNum)
		if err != nil {
			return err
		}
		for i := range m {
			m[i] = 0
		}
		if mi+1 < len(mapNums) {
			next := mapNums[mi+1]
			m[0], m[1] = byte(next), byte(next>>8)
		}
		if mi > 0 {
			prev := mapNums[mi-1]
			m[2], m[3] = byte(prev), byte(prev>>8)
		}

		start := mi * mapCapacity
		end := start + mapCapacity
		if end > len(dataNums) {
			end = len(dataNums)
		}
		for k := start; k < end; k++ {
			off := mapHeaderBytes + (k-start)*2
			d := dataNums[k]
			m[off], m[off+1] = byte(d), byte(d>>8)
		}
	}
	return nil
}

// fillData copies totalSize bytes from r into the data sectors in dataNums,
// in order, zero-padding the tail of the final sector.
func fillData(img *atr.Image, dataNums []int, r io.Reader, totalSize int) error {
	remaining := totalSize
	for _, d := range dataNums {
		buf, err := img.Sector(d)
		if err != nil {
			return err
		}
		n := len(buf)
		if remaining < n {
			n = remaining
		}
		if n > 0 {
			if _, err := io.ReadFull(r, buf[:n]); err != nil {
				return ferrors.IoErrorf(err, "reading content")
			}
		}
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		remaining -= n
	}
	return nil
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
