package spartafs

import (
	"testing"

	"github.com/atarifoundry/spartatr/atr"
)

// writeMapSector writes a raw map sector: next pointer, prev pointer, then
// the given data-sector indices.
func writeMapSector(t *testing.T, img *atr.Image, sector, next, prev int, dataSectors ...int) {
	t.Helper()
	m, err := img.Sector(sector)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m {
		m[i] = 0
	}
	m[0], m[1] = byte(next), byte(next>>8)
	m[2], m[3] = byte(prev), byte(prev>>8)
	for i, d := range dataSectors {
		off := mapHeaderBytes + i*2
		m[off], m[off+1] = byte(d), byte(d>>8)
	}
}

func TestReadChainFollowsChainAndStopsAtNaturalEnd(t *testing.T) {
	img := atr.New(128, 20)
	writeMapSector(t, img, 4, 5, 0, 6, 7)
	writeMapSector(t, img, 5, 0, 4, 8)
	for _, s := range []int{6, 7, 8} {
		sec, _ := img.Sector(s)
		for i := range sec {
			sec[i] = byte(s)
		}
	}

	data, err := ReadChain(img, 4, 3*128)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3*128 {
		t.Fatalf("got %d bytes, want %d", len(data), 3*128)
	}
	if data[0] != 6 || data[128] != 7 || data[256] != 8 {
		t.Fatalf("data sectors read out of order: %v", []byte{data[0], data[128], data[256]})
	}
}

func TestReadChainTerminatesOnSelfReferencingCycle(t *testing.T) {
	img := atr.New(128, 20)
	// Sector 4's next pointer points back to itself: a single-node cycle.
	writeMapSector(t, img, 4, 4, 0, 6)

	data, err := ReadChain(img, 4, 10000)
	if err == nil {
		t.Fatal("expected a Corruption warning from the aborted cycle")
	}
	if len(data) > img.SectorCount*img.SectorSize {
		t.Fatalf("returned %d bytes, more than N*sectorSize", len(data))
	}
}

func TestReadChainStopsAtMaxBytes(t *testing.T) {
	img := atr.New(128, 20)
	writeMapSector(t, img, 4, 5, 0, 6, 7)
	writeMapSector(t, img, 5, 0, 4, 8)

	data, err := ReadChain(img, 4, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 50 {
		t.Fatalf("got %d bytes, want 50", len(data))
	}
}

func TestReadChainZeroFirstMapReturnsEmpty(t *testing.T) {
	img := atr.New(128, 20)
	data, err := ReadChain(img, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("got %d bytes, want 0", len(data))
	}
}

func TestReadChainOutOfRangeDataSectorIsSkipped(t *testing.T) {
	img := atr.New(128, 20)
	writeMapSector(t, img, 4, 0, 0, 999, 6)
	sec, _ := img.Sector(6)
	for i := range sec {
		sec[i] = 42
	}

	data, err := ReadChain(img, 4, 256)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 128 || data[0] != 42 {
		t.Fatalf("expected only sector 6's data, got %d bytes starting %v", len(data), data[:1])
	}
}
