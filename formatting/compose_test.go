package formatting

import (
	"encoding/binary"
	"testing"
)

// sprmBytes builds the packed 16-bit Sprm descriptor bytes used by the
// tests below: ispmd (bits 0-8), sgc (bits 10-12), spra (bits 13-15).
func sprmBytes(ispmd uint16, sgc byte, spra byte) []byte {
	v := ispmd | uint16(sgc)<<10 | uint16(spra)<<13
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// TestComposeCharacterPropertiesToggleRelative exercises example S6:
// style B inherits bold=true from style A; toggling bold with operand
// 0x81 (logical-not of the style value) on a run in style B must flip
// it to false, not leave it true.
func TestComposeCharacterPropertiesToggleRelative(t *testing.T) {
	styleB := &CharacterProperties{Bold: true, Italic: true}
	styles := StyleLookup(func(istd uint16) (*ParagraphProperties, *CharacterProperties, bool) {
		if istd == 5 {
			return nil, styleB, true
		}
		return nil, nil, false
	})

	var grpprl []byte
	grpprl = append(grpprl, sprmBytes(0x30, 0x2, 2)...) // sprmCIstd, word operand
	grpprl = append(grpprl, 0x05, 0x00)                 // istd = 5
	grpprl = append(grpprl, sprmBytes(0x35, 0x2, 0)...) // sprmCFBold, byte operand
	grpprl = append(grpprl, 0x81)                       // logical-not of style value

	chp, warnings := ComposeCharacterProperties(&CharacterProperties{}, grpprl, styles)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if chp.Bold {
		t.Errorf("Bold = true, want false (0x81 negates style A's inherited bold)")
	}
	if !chp.Italic {
		t.Errorf("Italic = false, want true (inherited from style unchanged)")
	}
}

// TestComposeCharacterPropertiesTogglePassthrough covers operand 0x80:
// it must pass the current/style value through unchanged.
func TestComposeCharacterPropertiesTogglePassthrough(t *testing.T) {
	var grpprl []byte
	grpprl = append(grpprl, sprmBytes(0x35, 0x2, 0)...) // sprmCFBold
	grpprl = append(grpprl, 0x80)

	chp, _ := ComposeCharacterProperties(&CharacterProperties{Bold: true}, grpprl, nil)
	if !chp.Bold {
		t.Errorf("Bold = false, want true (0x80 passes the current value through)")
	}
}
