package boundary

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TalentFormula/msdoc/structures"
)

// singleParagraphDoc builds a one-piece, one-paragraph fixture: an
// 8-bit compressed piece spanning cp [0,10) at WordDocument bytes
// [100,110), with a single PAPX bin table entry covering the whole
// run and no grpprl (style/default properties only).
func singleParagraphDoc(t *testing.T) *Doc {
	t.Helper()

	page := make([]byte, structures.FKPSize)
	binary.LittleEndian.PutUint32(page[0:], 0)
	binary.LittleEndian.PutUint32(page[4:], 110)
	page[structures.FKPSize-1] = 1 // one entry, bOffset left at 0 (empty grpprl)

	wordDocument := make([]byte, structures.FKPSize)
	copy(wordDocument, page)

	pieces := &structures.PlcPcd{
		PLC: &structures.PLC{CPs: []structures.CP{0, 10}},
		Pieces: []*structures.PCD{
			{FC: 100, FcRaw: 200, IsUnicode: false},
		},
	}

	btePapx := &structures.PlcBte{Fc: []uint32{0, 1000}, Pn: []uint32{0}}

	return NewDoc(wordDocument, pieces, btePapx, nil, nil)
}

func TestFirstCPInParagraphSinglePiece(t *testing.T) {
	d := singleParagraphDoc(t)

	for _, cp := range []structures.CP{0, 3, 9} {
		first, err := d.FirstCPInParagraph(cp)
		require.NoError(t, err)
		assert.Equal(t, structures.CP(0), first)
	}
}

func TestLastCPInParagraphSinglePiece(t *testing.T) {
	d := singleParagraphDoc(t)

	last, props, err := d.LastCPInParagraph(0)
	require.NoError(t, err)
	require.NotNil(t, props)
	assert.Equal(t, structures.CP(9), last)
	assert.Equal(t, 0, props.TableDepth)
}

func TestCellDepthOutsideTable(t *testing.T) {
	d := singleParagraphDoc(t)

	depth, err := d.CellDepth(5)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)
}

func TestLastCPInRowRejectsNonTableParagraph(t *testing.T) {
	d := singleParagraphDoc(t)

	_, err := d.LastCPInRow(0, 10)
	assert.Error(t, err)
}

// TestComposedCharacterPropertiesResolvesBold builds a one-page
// ChpxFkp with a single run carrying sprmCFBold(0x01) and checks that
// ComposedCharacterProperties resolves it, exercising the CHP
// resolution path the driver now wires into every dispatched character.
func TestComposedCharacterPropertiesResolvesBold(t *testing.T) {
	page := make([]byte, structures.FKPSize)
	binary.LittleEndian.PutUint32(page[0:], 0)
	binary.LittleEndian.PutUint32(page[4:], 110)
	page[8] = 10 // offset*2 == 20
	page[20] = 3 // cb: 2-byte sprm + 1-byte operand
	page[21] = 0x35
	page[22] = 0x08
	page[23] = 0x01 // absolute true
	page[structures.FKPSize-1] = 1

	wordDocument := make([]byte, structures.FKPSize)
	copy(wordDocument, page)

	pieces := &structures.PlcPcd{
		PLC: &structures.PLC{CPs: []structures.CP{0, 10}},
		Pieces: []*structures.PCD{
			{FC: 100, FcRaw: 0, IsUnicode: false},
		},
	}
	btePapx := &structures.PlcBte{Fc: []uint32{0, 1000}, Pn: []uint32{0}}
	bteChpx := &structures.PlcBte{Fc: []uint32{0, 1000}, Pn: []uint32{0}}

	d := NewDoc(wordDocument, pieces, btePapx, bteChpx, nil)

	chp, err := d.ComposedCharacterProperties(0)
	require.NoError(t, err)
	assert.True(t, chp.Bold)
}

// TestComposedCharacterPropertiesNoBteChpx covers documents that carry
// no PlcBteChpx: callers get the zero-value CharacterProperties
// instead of an error.
func TestComposedCharacterPropertiesNoBteChpx(t *testing.T) {
	d := singleParagraphDoc(t)

	chp, err := d.ComposedCharacterProperties(0)
	require.NoError(t, err)
	assert.False(t, chp.Bold)
}
