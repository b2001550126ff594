package driver

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TalentFormula/msdoc/boundary"
	"github.com/TalentFormula/msdoc/formatting"
	"github.com/TalentFormula/msdoc/structures"
)

// recordingSink captures every char/mark dispatched to it, in order,
// along with the composed character properties it was handed.
type recordingSink struct {
	chars    []rune
	marks    []rune
	charChps []*formatting.CharacterProperties
}

func (s *recordingSink) Char(story Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story == StoryMain {
		s.chars = append(s.chars, r)
		s.charChps = append(s.charChps, chp)
	}
	return nil
}

func (s *recordingSink) Mark(story Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story == StoryMain {
		s.marks = append(s.marks, r)
	}
	return nil
}

// newFixtureDriver builds a single-piece, single-paragraph document:
// "ABCDEFGHI\r" as 8-bit compressed text at WordDocument bytes
// [100,110), with a PAPX bin page at page 1 (bytes 512-1024) covering
// the whole run.
func newFixtureDriver(t *testing.T) *Driver {
	t.Helper()

	wordDocument := make([]byte, 1024)
	copy(wordDocument[100:], "ABCDEFGHI\r")

	page := make([]byte, structures.FKPSize)
	binary.LittleEndian.PutUint32(page[0:], 0)
	binary.LittleEndian.PutUint32(page[4:], 110)
	page[structures.FKPSize-1] = 1
	copy(wordDocument[512:1024], page)

	pieces := &structures.PlcPcd{
		PLC: &structures.PLC{CPs: []structures.CP{0, 10}},
		Pieces: []*structures.PCD{
			{FC: 100, FcRaw: 200, IsUnicode: false},
		},
	}
	btePapx := &structures.PlcBte{Fc: []uint32{0, 1000}, Pn: []uint32{1}}

	boundaryDoc := boundary.NewDoc(wordDocument, pieces, btePapx, nil, nil)
	bounds := NewBounds(10, 0, 0)

	return New(wordDocument, pieces, boundaryDoc, bounds)
}

func TestRunDecodesMainDocument(t *testing.T) {
	d := newFixtureDriver(t)
	sink := &recordingSink{}

	require.NoError(t, d.Run(sink))

	assert.Equal(t, []rune("ABCDEFGHI"), sink.chars)
	assert.Equal(t, []rune{'\r'}, sink.marks)
	require.Len(t, sink.charChps, len(sink.chars))
	for _, chp := range sink.charChps {
		assert.NotNil(t, chp)
	}
}

func TestNewBoundsComputesAbsoluteCumulativeBounds(t *testing.T) {
	b := NewBounds(100, 20, 5)
	assert.Equal(t, structures.CP(100), b.MainEnd)
	assert.Equal(t, structures.CP(120), b.FootnotesEnd)
	assert.Equal(t, structures.CP(125), b.HeadersEnd)
}

func TestStoryString(t *testing.T) {
	assert.Equal(t, "main", StoryMain.String())
	assert.Equal(t, "footnotes", StoryFootnotes.String())
	assert.Equal(t, "headers", StoryHeaders.String())
}
