package structures

import (
	"encoding/binary"
	"fmt"
)

// CLX (Complex part, spec 4.3) is a sequence of zero or more Prc
// entries followed by exactly one PlcPcd. Each entry is tagged by a
// leading discriminator byte: 0x01 introduces a Prc (a property
// exception table this decoder does not need and skips), 0x02
// introduces the PlcPcd itself.
const (
	clxTagPrc    = 0x01
	clxTagPlcPcd = 0x02
)

// ParseCLX walks the Clx byte stream, skipping any Prc entries, and
// returns the PlcPcd it contains.
func ParseCLX(data []byte) (*PlcPcd, error) {
	pos := 0
	for pos < len(data) {
		tag := data[pos]
		pos++
		switch tag {
		case clxTagPrc:
			if pos+2 > len(data) {
				return nil, fmt.Errorf("clx: truncated Prc header at %d", pos)
			}
			cbGrpprl := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
			pos += 2
			if pos+cbGrpprl > len(data) {
				return nil, fmt.Errorf("clx: Prc grpprl of %d bytes overruns Clx", cbGrpprl)
			}
			pos += cbGrpprl // Prc data itself is not needed by this decoder.
		case clxTagPlcPcd:
			if pos+4 > len(data) {
				return nil, fmt.Errorf("clx: truncated PlcPcd length at %d", pos)
			}
			lcb := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4
			if pos+lcb > len(data) {
				return nil, fmt.Errorf("clx: PlcPcd of %d bytes overruns Clx", lcb)
			}
			return ParsePlcPcd(data[pos : pos+lcb])
		default:
			return nil, fmt.Errorf("clx: unrecognized discriminator byte 0x%02X at offset %d", tag, pos-1)
		}
	}
	return nil, fmt.Errorf("clx: no PlcPcd found before end of Clx")
}
