// Package atr decodes and encodes the ATR disk image container: a
// 16-byte header followed by a flat run of sectors. It knows nothing
// about the filesystem stored inside the payload.
package atr

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/atarifoundry/spartatr/ferrors"
)

// headerSize is the fixed size of the ATR header.
const headerSize = 16

// magic is the two-byte ATR signature at offset 0.
var magic = [2]byte{0x96, 0x02}

// paddedSectorBytes is the on-disk size of sectors 1-3, regardless of the
// image's declared sector size. Every ATR image with 256-byte sectors still
// stores its first three (boot) sectors as 128 bytes each, a historical
// quirk carried over from the format's single-density ancestry.
const paddedSectorBytes = 128

// Image is a decoded ATR container: header fields plus the raw sector
// payload.
type Image struct {
	SectorSize  int // declared sector size in bytes: 128 or 256
	SectorCount int // total number of sectors in the image
	payload     []byte
}

// New returns a zero-filled image with the given sector size and count,
// ready for a builder to populate sector by sector.
func New(sectorSize, sectorCount int) *Image {
	return &Image{
		SectorSize:  sectorSize,
		SectorCount: sectorCount,
		payload:     make([]byte, payloadSize(sectorSize, sectorCount)),
	}
}

// payloadSize computes the number of payload bytes for sectorCount sectors
// of sectorSize bytes, accounting for the sectors-1-3 128-byte exception.
func payloadSize(sectorSize, sectorCount int) int {
	if sectorSize != 256 {
		return sectorCount * sectorSize
	}
	if sectorCount <= 3 {
		return sectorCount * paddedSectorBytes
	}
	boot := 3 * paddedSectorBytes
	rest := (sectorCount - 3) * sectorSize
	return boot + rest
}

// Load reads and decodes an ATR image from disk.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.IoErrorf(err, "reading %s", path)
	}
	return Decode(raw)
}

// Decode parses a raw ATR file (header plus payload) into an Image.
func Decode(raw []byte) (*Image, error) {
	if len(raw) < headerSize {
		return nil, ferrors.ImageFormatf("ATR header truncated: got %d bytes, need at least %d", len(raw), headerSize)
	}
	if raw[0] != magic[0] || raw[1] != magic[1] {
		return nil, ferrors.ImageFormatf("bad ATR magic: got %02x %02x, want %02x %02x", raw[0], raw[1], magic[0], magic[1])
	}

	sectorSize := int(binary.LittleEndian.Uint16(raw[4:6]))
	if sectorSize != 128 && sectorSize != 256 {
		return nil, ferrors.ImageFormatf("unsupported sector size %d", sectorSize)
	}

	paragraphs := int(raw[2]) | int(raw[3])<<8 | int(raw[6])<<16
	size := paragraphs << 4

	payload := raw[headerSize:]
	if len(payload) < size {
		return nil, ferrors.ImageFormatf("ATR payload truncated: header declares %d bytes, file has %d", size, len(payload))
	}
	payload = payload[:size]

	sectorCount := sectorCountFor(sectorSize, size)

	return &Image{
		SectorSize:  sectorSize,
		SectorCount: sectorCount,
		payload:     payload,
	}, nil
}

// sectorCountFor derives the sector count implied by a payload size,
// inverting payloadSize's sectors-1-3 exception.
func sectorCountFor(sectorSize, size int) int {
	if sectorSize != 256 {
		return size / sectorSize
	}
	boot := 3 * paddedSectorBytes
	if size <= boot {
		return size / paddedSectorBytes
	}
	return 3 + (size-boot)/sectorSize
}

// offsetFor returns the payload byte offset and length of sector n (1-based).
func (img *Image) offsetFor(n int) (start, length int, err error) {
	if n < 1 || n > img.SectorCount {
		return 0, 0, ferrors.Corruptionf("sector %d out of range [1,%d]", n, img.SectorCount)
	}
	if img.SectorSize != 256 || n > 3 {
		length = img.SectorSize
		if img.SectorSize == 256 && img.SectorCount > 3 {
			start = 3*paddedSectorBytes + (n-4)*img.SectorSize
		} else {
			start = (n - 1) * img.SectorSize
		}
		return start, length, nil
	}
	// Sectors 1-3 of a 256-byte-sector image are always 128 bytes.
	return (n - 1) * paddedSectorBytes, paddedSectorBytes, nil
}

// Sector returns a mutable view onto sector n's bytes (1-based), honoring
// the sectors-1-3 128-byte padding rule.
func (img *Image) Sector(n int) ([]byte, error) {
	start, length, err := img.offsetFor(n)
	if err != nil {
		return nil, err
	}
	return img.payload[start : start+length], nil
}

// Encode returns the full ATR file contents (header plus payload).
func (img *Image) Encode() []byte {
	out := make([]byte, headerSize+len(img.payload))
	writeHeader(out[:headerSize], img.SectorSize, len(img.payload))
	copy(out[headerSize:], img.payload)
	return out
}

// WriteTo writes the full ATR file contents to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(img.Encode())
	return int64(n), err
}

// writeHeader fills a 16-byte ATR header for the given sector size and
// payload size, matching the original convertatr.c byte layout exactly.
func writeHeader(h []byte, sectorSize, size int) {
	h[0] = magic[0]
	h[1] = magic[1]
	paragraphs := size >> 4
	h[2] = byte(paragraphs)
	h[3] = byte(paragraphs >> 8)
	binary.LittleEndian.PutUint16(h[4:6], uint16(sectorSize))
	h[6] = byte(paragraphs >> 16)
	// bytes 7-15 stay zero.
}
