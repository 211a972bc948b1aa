// Package atascii converts between ATASCII, the Atari 8-bit text encoding,
// and UTF-8. Both directions are pure byte transformations over payload
// content; neither touches filesystem metadata.
package atascii

import (
	"bufio"
	"bytes"
	"io"

	"github.com/atarifoundry/spartatr/ferrors"
)

// atasciiEOL and utf8EOL are the two encodings' end-of-line bytes.
const (
	atasciiEOL = 0x9b
	utf8EOL    = 0x0a
)

// UTF8ToATASCII streams r's UTF-8 content to w as ATASCII. Bytes under 128
// pass through unchanged except for the end-of-line swap. Multi-byte UTF-8
// sequences are decoded and, only when they fall in the private-use range
// this package's ATASCIIToUTF8 produces (0xE080-0xE0FF), written back out
// as the single high-bit ATASCII byte they came from; any other non-ASCII
// character has no ATASCII representation and is dropped.
func UTF8ToATASCII(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ferrors.IoErrorf(err, "reading UTF-8 input")
		}

		switch {
		case b == utf8EOL:
			if err := bw.WriteByte(atasciiEOL); err != nil {
				return ferrors.IoErrorf(err, "writing ATASCII output")
			}
		case b < 128:
			if err := bw.WriteByte(b); err != nil {
				return ferrors.IoErrorf(err, "writing ATASCII output")
			}
		default:
			character, err := decodeUTF8Sequence(b, br)
			if err != nil {
				return err
			}
			if character&0xfc80 == 0xe080 {
				if err := bw.WriteByte(byte(character & 0xff)); err != nil {
					return ferrors.IoErrorf(err, "writing ATASCII output")
				}
			}
		}
	}
	return ferrors.IoErrorf(bw.Flush(), "flushing ATASCII output")
}

// ATASCIIToUTF8 streams r's ATASCII content to w as UTF-8. When sevenBit is
// true, every byte's high bit is stripped instead of being re-encoded as a
// private-use-range UTF-8 sequence.
func ATASCIIToUTF8(w io.Writer, r io.Reader, sevenBit bool) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ferrors.IoErrorf(err, "reading ATASCII input")
		}

		switch {
		case b == atasciiEOL:
			err = bw.WriteByte(utf8EOL)
		case b < 128 || sevenBit:
			err = bw.WriteByte(b & 0x7f)
		default:
			_, err = bw.Write([]byte{0xee, 0x80 | (b >> 6), 0x80 | (b & 0x3f)})
		}
		if err != nil {
			return ferrors.IoErrorf(err, "writing UTF-8 output")
		}
	}
	return ferrors.IoErrorf(bw.Flush(), "flushing UTF-8 output")
}

// decodeUTF8Sequence decodes the continuation bytes of a multi-byte UTF-8
// sequence whose leading byte is first, reading from br as needed.
func decodeUTF8Sequence(first byte, br *bufio.Reader) (int, error) {
	shifted := int(first) << 1
	var continuation [8]int
	cnt := 0
	for cnt < len(continuation) && shifted&0x80 != 0 {
		b, err := br.ReadByte()
		if err != nil {
			return 0, ferrors.ConversionErrorf("unexpected EOF while reading UTF-8 sequence")
		}
		continuation[cnt] = int(b)
		cnt++
		shifted <<= 1
	}

	character := int(first) & ((1 << (6 - cnt)) - 1)
	for i := 0; i < cnt; i++ {
		character = (character << 6) | (continuation[i] & 0x3f)
	}
	return character, nil
}

// EncodeUTF8ToATASCII converts a UTF-8 buffer to ATASCII in memory.
func EncodeUTF8ToATASCII(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := UTF8ToATASCII(&out, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeATASCIIToUTF8 converts an ATASCII buffer to UTF-8 in memory.
func DecodeATASCIIToUTF8(data []byte, sevenBit bool) ([]byte, error) {
	var out bytes.Buffer
	if err := ATASCIIToUTF8(&out, bytes.NewReader(data), sevenBit); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
