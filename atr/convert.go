package atr

import "github.com/atarifoundry/spartatr/ferrors"

// maxSectorCount is the largest sector count the 16-bit sector-count fields
// used elsewhere in the toolchain can address.
const maxSectorCount = 65535

// Resize grows img to newSectorCount sectors, zero-filling the new space.
// Shrinking is a hard error: there is no way to know which of the
// now-excluded sectors hold live data without walking the filesystem, and
// silently truncating would risk discarding it.
func (img *Image) Resize(newSectorCount int) (*Image, error) {
	if newSectorCount < img.SectorCount {
		return nil, ferrors.ImageFormatf("cannot shrink image from %d to %d sectors", img.SectorCount, newSectorCount)
	}
	if newSectorCount > maxSectorCount {
		return nil, ferrors.ImageFormatf("sector count %d exceeds maximum of %d", newSectorCount, maxSectorCount)
	}
	newPayload := make([]byte, payloadSize(img.SectorSize, newSectorCount))
	copy(newPayload, img.payload)
	return &Image{
		SectorSize:  img.SectorSize,
		SectorCount: newSectorCount,
		payload:     newPayload,
	}, nil
}

// ConvertSectorSize repacks img's raw bytes into an image with the given
// declared sector size (128 or 256). Sectors 1-3 stay 128 bytes each either
// way; the conversion re-chunks sectors 4 onward, which is always an exact
// multiple of 128 bytes' worth of underlying blocks regardless of the
// declared sector size, so the repack never loses or invents data: it only
// ever pads the final sector with zeros when the new chunking doesn't land
// evenly.
func (img *Image) ConvertSectorSize(newSectorSize int) (*Image, error) {
	if newSectorSize != 128 && newSectorSize != 256 {
		return nil, ferrors.ImageFormatf("unsupported sector size %d", newSectorSize)
	}
	if newSectorSize == img.SectorSize {
		newPayload := make([]byte, len(img.payload))
		copy(newPayload, img.payload)
		return &Image{SectorSize: img.SectorSize, SectorCount: img.SectorCount, payload: newPayload}, nil
	}

	var totalDataBlocks int
	if img.SectorCount > 3 {
		totalDataBlocks = (img.SectorCount - 3) * (img.SectorSize / paddedSectorBytes)
	}
	blocksPerNewSector := newSectorSize / paddedSectorBytes
	newDataSectors := (totalDataBlocks + blocksPerNewSector - 1) / blocksPerNewSector
	newSectorCount := 3 + newDataSectors
	if img.SectorCount <= 3 {
		newSectorCount = img.SectorCount
	}

	newPayload := make([]byte, payloadSize(newSectorSize, newSectorCount))
	copy(newPayload, img.payload)

	return &Image{
		SectorSize:  newSectorSize,
		SectorCount: newSectorCount,
		payload:     newPayload,
	}, nil
}
