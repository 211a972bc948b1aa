package spartafs

import "testing"

func TestDecodeNameInsertsDotAtEighthByte(t *testing.T) {
	raw := []byte("HELLO   TXT")
	if got := decodeName(raw); got != "HELLO.TXT" {
		t.Fatalf("got %q, want %q", got, "HELLO.TXT")
	}
}

func TestDecodeNameDropsSpacesNotReplacesThem(t *testing.T) {
	// 8-byte stem "AB" + 3-byte extension "C", space-padded, as a real
	// on-disk 11-byte name field would be.
	raw := []byte{'A', 'B', ' ', ' ', ' ', ' ', ' ', ' ', 'C', ' ', ' '}
	if got := decodeName(raw); got != "AB.C" {
		t.Fatalf("got %q, want %q", got, "AB.C")
	}
}

func TestDecodeNameReplacesForbiddenBytes(t *testing.T) {
	// Stem bytes covering '/', '?', '\\', backtick and a control byte;
	// extension is a plain "C".
	raw := []byte{'A', '/', 'B', '?', 'C', '\\', 0x60, '\x01', 'C', ' ', ' '}
	got := decodeName(raw)
	want := "A_B_C___.C"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeDecodeRoundTripsSimpleName(t *testing.T) {
	enc, err := encodeComponent8dot3("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got := displayName(enc); got != "README.TXT" {
		t.Fatalf("got %q, want %q", got, "README.TXT")
	}
}

func TestEncodeTruncatesLongStemAndExtension(t *testing.T) {
	enc, err := encodeComponent8dot3("verylongname.verylongext")
	if err != nil {
		t.Fatal(err)
	}
	if got := displayName(enc); got != "VERYLONG.VER" {
		t.Fatalf("got %q, want %q", got, "VERYLONG.VER")
	}
}

func TestEncodeReplacesUnsafeBytesWithUnderscore(t *testing.T) {
	enc, err := encodeComponent8dot3("bad:name*.ext")
	if err != nil {
		t.Fatal(err)
	}
	got := displayName(enc)
	for _, c := range got {
		if c == ':' || c == '*' {
			t.Fatalf("unsafe byte survived encoding: %q", got)
		}
	}
}

func TestEncodeRejectsEmptyName(t *testing.T) {
	if _, err := encodeComponent8dot3(""); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}
