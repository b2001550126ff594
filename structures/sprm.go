package structures

import (
	"encoding/binary"
	"fmt"
)

// SprmGroup identifies which kind of property a Sprm modifies (sgc).
type SprmGroup byte

const (
	SgcParagraph SprmGroup = 0x1
	SgcCharacter SprmGroup = 0x2
	SgcPicture   SprmGroup = 0x3
	SgcSection   SprmGroup = 0x4
	SgcTable     SprmGroup = 0x5
)

// Well-known ispmd values referenced by the operand-width exceptions
// and by the property applier.
const (
	sprmTDefTable = 0x08
	sprmPChgTabs  = 0x15

	SprmPIstd     = 0x00
	SprmPJc80     = 0x03
	SprmPDyaBefore = 0x13
	SprmPDyaAfter  = 0x14
	SprmPJc        = 0x61

	SprmCFBold      = 0x35
	SprmCFItalic    = 0x36
	SprmCFOutline   = 0x38
	SprmCFSmallCaps = 0x3A
	SprmCHighlight  = 0x0C
	SprmCHpsBi      = 0x61
	SprmCIstd       = 0x30

	SprmTJc90 = 0x00
	SprmTJc   = 0x8A
)

// Sprm is the packed 16-bit property descriptor described in spec 4.6:
// ispmd (bits 0-8), fSpec (bit 9), sgc (bits 10-12), spra (bits 13-15).
type Sprm uint16

func (s Sprm) Ispmd() uint16    { return uint16(s) & 0x01FF }
func (s Sprm) FSpec() bool      { return (uint16(s)>>9)&0x01 != 0 }
func (s Sprm) Sgc() SprmGroup   { return SprmGroup((uint16(s) >> 10) & 0x07) }
func (s Sprm) Spra() byte       { return byte(uint16(s) >> 13) }

// Prl (Property modifier) pairs a Sprm with its operand bytes.
type Prl struct {
	Sprm    Sprm
	Operand []byte
}

// ParseGrpprl decodes a grpprl (a run of back-to-back Prl records) into
// a slice of Prl. Decoding stops at the first malformed Prl, matching
// the reference's "stop all grpprl parsing on error" behavior -
// everything successfully decoded up to that point is still returned.
func ParseGrpprl(grpprl []byte) ([]Prl, error) {
	var prls []Prl
	read := 0
	for read < len(grpprl) {
		prl, consumed, err := parsePrl(grpprl, read)
		if err != nil {
			if len(prls) == 0 {
				return nil, err
			}
			return prls, nil
		}
		prls = append(prls, prl)
		read += consumed
	}
	return prls, nil
}

// parsePrl decodes a single Prl starting at offset read, returning the
// decoded Prl and the number of bytes it consumed (sprm + operand).
func parsePrl(grpprl []byte, read int) (Prl, int, error) {
	if read+2 > len(grpprl) {
		return Prl{}, 0, fmt.Errorf("sprm: truncated sprm at offset %d", read)
	}
	sprm := Sprm(binary.LittleEndian.Uint16(grpprl[read : read+2]))

	var bytes int
	switch sprm.Spra() {
	case 0, 1:
		bytes = 1
	case 2, 4, 5:
		bytes = 2
	case 7:
		bytes = 3
	case 3:
		bytes = 4
	case 6:
		n, err := variableOperandLength(sprm, grpprl, read)
		if err != nil {
			return Prl{}, 0, err
		}
		bytes = n
	default:
		return Prl{}, 0, fmt.Errorf("sprm: unrecognized spra %d at offset %d", sprm.Spra(), read)
	}

	operandStart := read + 2
	operandEnd := operandStart + bytes
	if operandEnd > len(grpprl) {
		return Prl{}, 0, fmt.Errorf("sprm: operand of %d bytes at offset %d overruns grpprl", bytes, read)
	}

	operand := make([]byte, bytes)
	copy(operand, grpprl[operandStart:operandEnd])

	return Prl{Sprm: sprm, Operand: operand}, 2 + bytes, nil
}

// variableOperandLength resolves an spra==6 variable-width operand.
// The first operand byte normally gives the remaining byte count, but
// sprmTDefTable and sprmPChgTabs pack their length differently.
func variableOperandLength(sprm Sprm, grpprl []byte, read int) (int, error) {
	if sprm.Sgc() == SgcTable && sprm.Ispmd() == sprmTDefTable {
		if read+4 > len(grpprl) {
			return 0, fmt.Errorf("sprm: truncated sprmTDefTable length at %d", read)
		}
		cb := binary.LittleEndian.Uint16(grpprl[read+2 : read+4])
		return int(cb) + 1, nil
	}
	if sprm.Sgc() == SgcParagraph && sprm.Ispmd() == sprmPChgTabs {
		if read+3 > len(grpprl) {
			return 0, fmt.Errorf("sprm: truncated sprmPChgTabs length at %d", read)
		}
		cb := grpprl[read+2]
		switch {
		case cb > 1 && cb < 255:
			return int(cb), nil
		case cb == 255:
			return 0, fmt.Errorf("sprm: PChgTabsOperand long form not supported")
		default:
			return 0, fmt.Errorf("sprm: invalid PChgTabsOperand length %d", cb)
		}
	}
	if read+3 > len(grpprl) {
		return 0, fmt.Errorf("sprm: truncated variable-length operand at %d", read)
	}
	return int(grpprl[read+2]) + 1, nil
}

// ResolveToggle resolves a ToggleOperand byte per spec 4.6: 0x00 is
// absolute false, 0x01 is absolute true, 0x80 passes the inherited
// style value through unchanged, and 0x81 is the logical-not of the
// style value. styleValue is the property's value before this Prl is
// applied (the enclosing style's value, or the base CHP/PAP's current
// value when there is no style). Any other byte is undefined and also
// resolves to styleValue, i.e. a no-op.
func ResolveToggle(operand byte, styleValue bool) bool {
	switch operand {
	case 0x00:
		return false
	case 0x01:
		return true
	case 0x80:
		return styleValue
	case 0x81:
		return !styleValue
	default:
		return styleValue
	}
}
