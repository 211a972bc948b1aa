package atr

import (
	"strings"
	"testing"

	"github.com/atarifoundry/spartatr/ferrors"
	"github.com/kr/pretty"
)

func TestImageEncodeDecodeRoundtrip(t *testing.T) {
	for _, sectorSize := range []int{128, 256} {
		img := New(sectorSize, 10)
		for n := 1; n <= 10; n++ {
			sec, err := img.Sector(n)
			if err != nil {
				t.Fatal(err)
			}
			for i := range sec {
				sec[i] = byte(n)
			}
		}

		raw := img.Encode()
		img2, err := Decode(raw)
		if err != nil {
			t.Fatal(err)
		}
		if img2.SectorSize != img.SectorSize || img2.SectorCount != img.SectorCount {
			t.Fatalf("header mismatch: got size=%d count=%d, want size=%d count=%d",
				img2.SectorSize, img2.SectorCount, img.SectorSize, img.SectorCount)
		}
		for n := 1; n <= 10; n++ {
			want, _ := img.Sector(n)
			got, err := img2.Sector(n)
			if err != nil {
				t.Fatal(err)
			}
			if string(want) != string(got) {
				t.Errorf("sector %d differs: %s", n, strings.Join(pretty.Diff(want, got), "; "))
			}
		}
	}
}

func TestSectorsOneThroughThreeAreAlways128Bytes(t *testing.T) {
	img := New(256, 10)
	for n := 1; n <= 3; n++ {
		sec, err := img.Sector(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(sec) != 128 {
			t.Errorf("sector %d: got %d bytes, want 128", n, len(sec))
		}
	}
	for n := 4; n <= 10; n++ {
		sec, err := img.Sector(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(sec) != 256 {
			t.Errorf("sector %d: got %d bytes, want 256", n, len(sec))
		}
	}
}

func TestDecodeBadMagic(t *testing.T) {
	raw := New(128, 4).Encode()
	raw[0] = 0x00
	_, err := Decode(raw)
	if !ferrors.IsImageFormat(err) {
		t.Fatalf("expected ImageFormat error, got %v", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{0x96, 0x02, 0, 0})
	if !ferrors.IsImageFormat(err) {
		t.Fatalf("expected ImageFormat error, got %v", err)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	raw := New(128, 10).Encode()
	raw = raw[:len(raw)-128]
	_, err := Decode(raw)
	if !ferrors.IsImageFormat(err) {
		t.Fatalf("expected ImageFormat error, got %v", err)
	}
}

func TestDecodeBadSectorSize(t *testing.T) {
	raw := New(128, 4).Encode()
	raw[4], raw[5] = 0x01, 0x00 // sector size = 1
	_, err := Decode(raw)
	if !ferrors.IsImageFormat(err) {
		t.Fatalf("expected ImageFormat error, got %v", err)
	}
}

func TestSectorOutOfRange(t *testing.T) {
	img := New(128, 4)
	if _, err := img.Sector(0); !ferrors.IsCorruption(err) {
		t.Errorf("sector 0: expected Corruption error, got %v", err)
	}
	if _, err := img.Sector(5); !ferrors.IsCorruption(err) {
		t.Errorf("sector 5: expected Corruption error, got %v", err)
	}
}

func TestResizeGrowsAndPreservesData(t *testing.T) {
	img := New(128, 4)
	sec, _ := img.Sector(1)
	copy(sec, []byte("boot"))

	grown, err := img.Resize(8)
	if err != nil {
		t.Fatal(err)
	}
	if grown.SectorCount != 8 {
		t.Fatalf("got %d sectors, want 8", grown.SectorCount)
	}
	sec1, _ := grown.Sector(1)
	if string(sec1[:4]) != "boot" {
		t.Errorf("sector 1 data lost: got %q", sec1[:4])
	}
}

func TestResizeRejectsShrink(t *testing.T) {
	img := New(128, 8)
	if _, err := img.Resize(4); err == nil {
		t.Fatal("expected shrink to be rejected")
	}
}

func TestConvertSectorSizeRoundTrips128To256AndBack(t *testing.T) {
	img := New(128, 11) // 3 boot + 8 data sectors
	for n := 1; n <= 11; n++ {
		sec, _ := img.Sector(n)
		for i := range sec {
			sec[i] = byte(n)
		}
	}

	wide, err := img.ConvertSectorSize(256)
	if err != nil {
		t.Fatal(err)
	}
	if wide.SectorSize != 256 {
		t.Fatalf("got sector size %d, want 256", wide.SectorSize)
	}
	// 8 data sectors of 128 bytes pack into 4 sectors of 256 bytes.
	if wide.SectorCount != 7 {
		t.Fatalf("got %d sectors, want 7", wide.SectorCount)
	}

	back, err := wide.ConvertSectorSize(128)
	if err != nil {
		t.Fatal(err)
	}
	if back.SectorCount != img.SectorCount {
		t.Fatalf("got %d sectors after round trip, want %d", back.SectorCount, img.SectorCount)
	}
	for n := 1; n <= 11; n++ {
		want, _ := img.Sector(n)
		got, err := back.Sector(n)
		if err != nil {
			t.Fatal(err)
		}
		if string(want) != string(got) {
			t.Errorf("sector %d differs after round trip", n)
		}
	}
}
