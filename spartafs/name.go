package spartafs

import (
	"strings"

	"github.com/atarifoundry/spartatr/ferrors"
)

// decodeName decodes up to 11 raw stem+extension bytes from a directory
// entry into a display name, reproducing the source tool's get_name byte
// by byte: control bytes, '/', '.', '?', '\\', backtick, and anything past
// 'z' become '_'; spaces are dropped entirely rather than replaced; a '.'
// is inserted once, immediately before the first non-space byte of the
// extension (raw bytes 9-11). A name whose extension is all spaces gets no
// '.'.
func decodeName(raw []byte) string {
	var b strings.Builder
	dotEmitted := false
	for i, c := range raw {
		switch {
		case c < ' ' || c == '/' || c == '.' || c == '?' || c == '\\' || c == 0x60 || c > 'z':
			c = '_'
		case c == ' ':
			continue
		}
		if i > 7 && !dotEmitted {
			dotEmitted = true
			b.WriteByte('.')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// safeExtraBytes are the non-alphanumeric host characters an encoded Atari
// name may contain verbatim. Everything else collapses to '_'. Chosen so
// that every byte this set can produce survives decodeName unchanged: none
// of them are '_', '.', '/', '?', '\\', backtick, space, or above 'z'.
const safeExtraBytes = "!#$%&'()+-;=@^"

// encodeComponent8dot3 uppercase-folds name and maps it into an 8-byte stem
// and 3-byte extension, space-padded, splitting on the last '.'. Characters
// outside A-Z, 0-9, and safeExtraBytes become '_'; spaces are dropped.
func encodeComponent8dot3(name string) ([11]byte, error) {
	if name == "" {
		return [11]byte{}, ferrors.ImageFormatf("cannot encode empty name")
	}

	stem := name
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		stem, ext = name[:i], name[i+1:]
	}

	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	encodePart(out[0:8], stem)
	encodePart(out[8:11], ext)
	return out, nil
}

// encodePart fills dst (already space-padded) with the encoded, truncated
// form of part.
func encodePart(dst []byte, part string) {
	i := 0
	for _, r := range strings.ToUpper(part) {
		if i >= len(dst) {
			break
		}
		c := byte(r)
		if r > 0x7f {
			c = '_'
		}
		if c == ' ' {
			continue
		}
		if !isSafeAtariByte(c) {
			c = '_'
		}
		dst[i] = c
		i++
	}
}

func isSafeAtariByte(c byte) bool {
	if c >= 'A' && c <= 'Z' {
		return true
	}
	if c >= '0' && c <= '9' {
		return true
	}
	return strings.IndexByte(safeExtraBytes, c) >= 0
}

// displayName renders an encoded 11-byte stem+extension pair the same way
// decodeName would read it back off disk, for use as the builder's
// in-memory DirEntry.Name and duplicate-name comparison key.
func displayName(enc [11]byte) string {
	return decodeName(enc[:])
}
