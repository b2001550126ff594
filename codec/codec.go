// Package codec decodes the two text encodings MS-DOC piece runs use
// (MS-DOC 2.4.1 / FcCompressed): 8-bit "compressed" runs, which are
// Windows-1252 apart from a handful of values reserved for document
// marks, and 16-bit runs, which are UTF-16LE with the no-break marker
// U+FEFF dropped rather than treated as a stream BOM.
package codec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// noBreakMark is inserted mid-run by some producers and carries no
// text of its own; retrieving_text.c drops it rather than forwarding
// it to the callback.
const noBreakMark = 0xFEFF

// DecodeANSI decodes an 8-bit compressed run. Windows-1252 already
// carries the exact byte-to-codepoint mapping MS-DOC 2.4.1 lists for
// 0x82-0x9F (curly quotes, dashes, the OE ligature and so on), so no
// override table on top of it is needed.
func DecodeANSI(data []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("codec: windows-1252 decode: %w", err)
	}
	return string(out), nil
}

// DecodeUTF16LE decodes a 16-bit Unicode run. data must hold a whole
// number of UTF-16 code units.
func DecodeUTF16LE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("codec: UTF-16LE run has odd length %d", len(data))
	}
	filtered := make([]byte, 0, len(data))
	for off := 0; off < len(data); off += 2 {
		if binary.LittleEndian.Uint16(data[off:off+2]) == noBreakMark {
			continue
		}
		filtered = append(filtered, data[off], data[off+1])
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, filtered)
	if err != nil {
		return "", fmt.Errorf("codec: UTF-16LE decode: %w", err)
	}
	return string(out), nil
}

// IsMark reports whether a decoded rune falls in the C0 control range
// MS-DOC reserves for structural marks (paragraph mark, cell mark, end
// of section, and similar) rather than visible text, per the callback
// dispatch in retrieving_text.c.
func IsMark(r rune) bool {
	return r < 0x20 && r != '\t'
}
