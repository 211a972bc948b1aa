package spartafs

import (
	"testing"

	"github.com/atarifoundry/spartatr/ferrors"
)

func TestBitmapSectorCountCoversOneBitPerSectorPlusSentinel(t *testing.T) {
	cases := []struct {
		sectorSize, sectorCount, want int
	}{
		{128, 720, 1},  // (720+1) bits -> 91 bytes, fits one 128-byte sector
		{256, 720, 1},  // 91 bytes fits one 256-byte sector too
		{128, 2000, 2}, // 2001 bits -> 251 bytes, needs two 128-byte sectors
	}
	for _, c := range cases {
		got := bitmapSectorCount(c.sectorSize, c.sectorCount)
		if got != c.want {
			t.Errorf("bitmapSectorCount(%d, %d) = %d, want %d", c.sectorSize, c.sectorCount, got, c.want)
		}
	}
}

func TestNewBitmapReservesBootAndBitmapSectors(t *testing.T) {
	b := newBitmap(256, 720)
	if !b.used[0] {
		t.Error("sector 0 should be reserved")
	}
	for s := 1; s <= bootSectors; s++ {
		if !b.used[s] {
			t.Errorf("boot sector %d should be reserved", s)
		}
	}
	for i := 0; i < b.bitmapLen; i++ {
		s := b.bitmapLoc + i
		if !b.used[s] {
			t.Errorf("bitmap sector %d should be reserved", s)
		}
	}
	if !b.IsFree(b.next) {
		t.Errorf("first allocatable sector %d should be free", b.next)
	}
}

func TestBitmapAllocateSkipsUsedAndReturnsLowestFirst(t *testing.T) {
	b := newBitmap(256, 20)
	first, err := b.allocate()
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.allocate()
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Errorf("expected increasing allocation order, got %d then %d", first, second)
	}
	if b.IsFree(first) || b.IsFree(second) {
		t.Error("allocated sectors should no longer read as free")
	}
}

func TestBitmapAllocateExhaustion(t *testing.T) {
	b := newBitmap(128, 10)
	for {
		if _, err := b.allocate(); err != nil {
			if !ferrors.IsOutOfSpace(err) {
				t.Fatalf("expected out-of-space error, got %v", err)
			}
			break
		}
	}
}
