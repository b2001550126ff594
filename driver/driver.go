// Package driver runs the three-phase traversal of a document's text
// (MS-DOC 2.3: main document, footnotes, headers), decoding each
// character in turn and dispatching it to a caller-supplied sink - the
// Go generalization of doc_parse.c's three callback parameters.
package driver

import (
	"fmt"

	"github.com/TalentFormula/msdoc/boundary"
	"github.com/TalentFormula/msdoc/codec"
	"github.com/TalentFormula/msdoc/formatting"
	"github.com/TalentFormula/msdoc/structures"
)

// Story identifies which of the three text ranges a character came
// from (MS-DOC 2.3.1-2.3.3).
type Story int

const (
	StoryMain Story = iota
	StoryFootnotes
	StoryHeaders
)

func (s Story) String() string {
	switch s {
	case StoryMain:
		return "main"
	case StoryFootnotes:
		return "footnotes"
	case StoryHeaders:
		return "headers"
	default:
		return "unknown"
	}
}

// Sink receives decoded characters as the driver walks a document.
// Char is called once per character position, in cp order, within
// each story in turn; Mark is called instead of Char when the
// character is a structural mark (paragraph mark, cell mark, and
// similar, MS-DOC 2.4.1) rather than visible text.
//
// Both callbacks receive the character's composed direct character
// formatting (chp), matching direct_character_formatting.c's per-cp
// resolution, which the original runs for every story alike. pap is
// the enclosing paragraph's composed formatting; it is only resolved
// for the main document story, whose traversal walks one paragraph at
// a time to find cp bounds (MS-DOC 2.3.2/2.3.3's footnote/header loops
// never performed that walk in the original either), so pap is nil for
// footnote and header callbacks.
type Sink interface {
	Char(story Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error
	Mark(story Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error
}

// Bounds gives the absolute, cumulative cp bounds of each story
// (FibRgLw97.ccpText/ccpFtn/ccpHdd), fixing doc_parse.c's loop-relative
// footnote/header bounds (`cp < ccpFtn`, `cp < ccpHdd`) which only
// worked there because cp was never reset between loops.
type Bounds struct {
	MainEnd      structures.CP
	FootnotesEnd structures.CP
	HeadersEnd   structures.CP
}

// NewBounds computes absolute story bounds from the FIB's character counts.
func NewBounds(ccpText, ccpFtn, ccpHdd uint32) Bounds {
	mainEnd := structures.CP(ccpText)
	ftnEnd := mainEnd + structures.CP(ccpFtn)
	hddEnd := ftnEnd + structures.CP(ccpHdd)
	return Bounds{MainEnd: mainEnd, FootnotesEnd: ftnEnd, HeadersEnd: hddEnd}
}

// Driver walks a document's text stories and decodes each character.
type Driver struct {
	WordDocument []byte
	Pieces       *structures.PlcPcd
	Boundary     *boundary.Doc // used for the main document's paragraph-at-a-time walk
	Bounds       Bounds
}

// New builds a Driver from its already-parsed constituent structures.
func New(wordDocument []byte, pieces *structures.PlcPcd, boundaryDoc *boundary.Doc, bounds Bounds) *Driver {
	return &Driver{WordDocument: wordDocument, Pieces: pieces, Boundary: boundaryDoc, Bounds: bounds}
}

// Run walks all three stories in order, dispatching every character
// position to sink.
func (d *Driver) Run(sink Sink) error {
	if err := d.runMainDocument(sink); err != nil {
		return fmt.Errorf("driver: main document: %w", err)
	}
	if err := d.runRange(StoryFootnotes, d.Bounds.MainEnd, d.Bounds.FootnotesEnd, sink); err != nil {
		return fmt.Errorf("driver: footnotes: %w", err)
	}
	if err := d.runRange(StoryHeaders, d.Bounds.FootnotesEnd, d.Bounds.HeadersEnd, sink); err != nil {
		return fmt.Errorf("driver: headers: %w", err)
	}
	return nil
}

// runMainDocument walks the main document paragraph by paragraph,
// using LastCPInParagraph to find each paragraph's end the way
// doc_parse.c's main loop does, then decodes every cp within it.
func (d *Driver) runMainDocument(sink Sink) error {
	cp := structures.CP(0)
	for cp < d.Bounds.MainEnd {
		lcp, pap, err := d.Boundary.LastCPInParagraph(cp)
		if err != nil {
			return err
		}
		for cp <= lcp && cp < d.Bounds.MainEnd {
			if err := d.dispatchChar(StoryMain, cp, pap, sink); err != nil {
				return err
			}
			cp++
		}
	}
	return nil
}

// runRange decodes every character in [start, end) without paragraph
// bookkeeping, matching doc_parse.c's footnote/header loops.
func (d *Driver) runRange(story Story, start, end structures.CP, sink Sink) error {
	for cp := start; cp < end; cp++ {
		if err := d.dispatchChar(story, cp, nil, sink); err != nil {
			return err
		}
	}
	return nil
}

// dispatchChar decodes the character at cp (MS-DOC 2.4.1,
// retrieving_text.c's get_char_for_cp), resolves its composed
// character formatting (direct_character_formatting.c, run for every
// story alike), and forwards both to sink alongside the caller-
// supplied paragraph formatting.
func (d *Driver) dispatchChar(story Story, cp structures.CP, pap *formatting.ParagraphProperties, sink Sink) error {
	i, err := d.Pieces.PieceIndexForCP(cp)
	if err != nil {
		return err
	}
	pcd := d.Pieces.Pieces[i]
	start := d.Pieces.CPs[i]

	var text string
	if !pcd.IsUnicode {
		off := pcd.FC + uint32(cp-start)
		if int(off) >= len(d.WordDocument) {
			return fmt.Errorf("driver: cp %d's ANSI offset %d is past the end of the WordDocument stream", cp, off)
		}
		text, err = codec.DecodeANSI(d.WordDocument[off : off+1])
	} else {
		off := pcd.FC + 2*uint32(cp-start)
		if int(off)+2 > len(d.WordDocument) {
			return fmt.Errorf("driver: cp %d's Unicode offset %d is past the end of the WordDocument stream", cp, off)
		}
		text, err = codec.DecodeUTF16LE(d.WordDocument[off : off+2])
	}
	if err != nil {
		return err
	}
	if text == "" {
		// The code unit was the no-break mark (U+FEFF) and carries no
		// character of its own.
		return nil
	}

	chp, err := d.Boundary.ComposedCharacterProperties(cp)
	if err != nil {
		return err
	}

	for _, r := range text {
		if codec.IsMark(r) {
			if err := sink.Mark(story, cp, r, pap, chp); err != nil {
				return err
			}
			continue
		}
		if err := sink.Char(story, cp, r, pap, chp); err != nil {
			return err
		}
	}
	return nil
}
