// Package boundary implements the character-position boundary
// algorithms of MS-DOC 2.4: given a cp anywhere in a paragraph, row,
// section or table cell, find the cp that opens or closes it, walking
// the piece table and the PAPX bin table exactly as the format
// requires rather than assuming one paragraph per piece.
package boundary

import (
	"encoding/binary"
	"fmt"

	"github.com/TalentFormula/msdoc/formatting"
	"github.com/TalentFormula/msdoc/structures"
)

// Doc is the minimal set of parsed structures the boundary algorithms
// need: the piece table, the paragraph and character bin tables, and
// the WordDocument stream bytes those bin table pages live in. BteChpx
// and Styles are optional; when BteChpx is nil, ComposedCharacterProperties
// returns the package defaults. When Styles is nil, sprmPIstd/sprmCIstd
// resolve to the package defaults instead of an actual style.
type Doc struct {
	WordDocument []byte
	Pieces       *structures.PlcPcd
	BtePapx      *structures.PlcBte
	BteChpx      *structures.PlcBte
	Sections     *structures.PlcfSed
	Styles       styleLookup
}

// styleLookup matches style.Sheet.Lookup without importing the style
// package, which would otherwise create an import cycle through
// formatting.StyleLookup.
type styleLookup = formatting.StyleLookup

// NewDoc builds a Doc from its already-parsed constituent structures.
// bteChpx may be nil when the document carries no PlcBteChpx (or it
// was not requested), in which case character runs compose to the
// package's zero-value CharacterProperties.
func NewDoc(wordDocument []byte, pieces *structures.PlcPcd, btePapx, bteChpx *structures.PlcBte, styles styleLookup) *Doc {
	return &Doc{WordDocument: wordDocument, Pieces: pieces, BtePapx: btePapx, BteChpx: bteChpx, Styles: styles}
}

// WithSections attaches the section descriptor table so
// ComposedSectionProperties can resolve section formatting; it is
// optional because not every caller needs section-level properties.
func (d *Doc) WithSections(sections *structures.PlcfSed) *Doc {
	d.Sections = sections
	return d
}

func (d *Doc) papxPage(pn uint32) (*structures.FKP, error) {
	off := int(pn) * structures.FKPSize
	if off < 0 || off+structures.FKPSize > len(d.WordDocument) {
		return nil, fmt.Errorf("boundary: PAPX page %d falls outside the WordDocument stream", pn)
	}
	return structures.ParseFKP(d.WordDocument[off:off+structures.FKPSize], structures.FKPTypePAP)
}

func (d *Doc) chpxPage(pn uint32) (*structures.FKP, error) {
	off := int(pn) * structures.FKPSize
	if off < 0 || off+structures.FKPSize > len(d.WordDocument) {
		return nil, fmt.Errorf("boundary: CHPX page %d falls outside the WordDocument stream", pn)
	}
	return structures.ParseFKP(d.WordDocument[off:off+structures.FKPSize], structures.FKPTypeCHP)
}

// FirstCPInParagraph finds the character position of the first
// character in the paragraph containing cp (MS-DOC 2.4.2).
func (d *Doc) FirstCPInParagraph(cp structures.CP) (structures.CP, error) {
	i, err := d.Pieces.PieceIndexForCP(cp)
	if err != nil {
		return 0, err
	}
	cps := d.Pieces.CPs

	for {
		pcd := d.Pieces.Pieces[i]
		compressed := !pcd.IsUnicode
		fcPcd := pcd.FcRaw
		fc := fcPcd + 2*uint32(cp-cps[i])
		if compressed {
			fcPcd /= 2
			fc /= 2
		}

		fcLast := d.BtePapx.Fc[len(d.BtePapx.Fc)-1]

		var fcFirst uint32
		haveFirst := false

		switch {
		case fcLast <= fc && fcLast < fcPcd:
			// Step 8 directly: this piece starts past the bin table's last fc.
		case fcLast <= fc:
			fc = fcLast
			if compressed {
				fcLast /= 2
			}
			fcFirst = fcLast
			haveFirst = true
		default:
			j := d.BtePapx.FindPage(fc)
			if j < 0 {
				return 0, fmt.Errorf("boundary: cp %d has no PAPX bin", cp)
			}
			page, err := d.papxPage(d.BtePapx.Pn[j])
			if err != nil {
				return 0, err
			}
			entry := page.FindEntryForFC(fc)
			if entry == nil || entry.FCEnd <= fc {
				return 0, fmt.Errorf("boundary: cp %d is outside the range of character positions in this document", cp)
			}
			fcFirst = entry.FC
			haveFirst = true
		}

		if haveFirst && fcFirst > fcPcd {
			dfc := fcFirst - fcPcd
			if !compressed {
				dfc /= 2
			}
			return cps[i] + structures.CP(dfc), nil
		}

		if cps[i] == 0 {
			return 0, nil
		}
		cp = cps[i]
		i--
	}
}

// paragraphRun is the PAPX run (and the piece/page context it was
// found in) that last_cp_in_paragraph locates - direct_paragraph_
// formatting.c then reads this same run to compose properties.
type paragraphRun struct {
	pcd   *structures.PCD
	entry *structures.FKPEntry
}

// LastCPInParagraph finds the character position of the last
// character in the paragraph containing cp (MS-DOC 2.4.2), along with
// the paragraph's fully composed direct formatting (MS-DOC 2.4.6.1):
// style lookup by istd, the run's own grpprl, and finally Pcd.Prm.
func (d *Doc) LastCPInParagraph(cp structures.CP) (structures.CP, *formatting.ParagraphProperties, error) {
	i, err := d.Pieces.PieceIndexForCP(cp)
	if err != nil {
		return 0, nil, err
	}
	cps := d.Pieces.CPs

	var run paragraphRun

	for {
		pcd := d.Pieces.Pieces[i]
		compressed := !pcd.IsUnicode
		fcPcd := pcd.FcRaw
		fc := fcPcd + 2*uint32(cp-cps[i])
		fcMac := fcPcd + 2*uint32(cps[i+1]-cps[i])
		if compressed {
			fc /= 2
			fcPcd /= 2
			fcMac /= 2
		}

		fcLast := d.BtePapx.Fc[len(d.BtePapx.Fc)-1]

		if fcLast <= fc {
			cp = cps[i+1]
			i++
			continue
		}

		j := d.BtePapx.FindPage(fc)
		if j < 0 {
			return 0, nil, fmt.Errorf("boundary: cp %d has no PAPX bin", cp)
		}
		page, err := d.papxPage(d.BtePapx.Pn[j])
		if err != nil {
			return 0, nil, err
		}
		entry := page.FindEntryForFC(fc)
		if entry == nil || entry.FCEnd <= fc {
			return 0, nil, fmt.Errorf("boundary: cp %d is outside the range of character positions in this document", cp)
		}
		fcLim := entry.FCEnd

		if fcLim <= fcMac {
			dfc := fcLim - fcPcd
			if !compressed {
				dfc /= 2
			}
			run = paragraphRun{pcd: pcd, entry: entry}
			lcp := cps[i] + structures.CP(dfc) - 1
			props := d.directParagraphFormatting(run)
			return lcp, props, nil
		}

		cp = cps[i+1]
		i++
	}
}

// directParagraphFormatting composes a paragraph's properties the way
// 2.4.6.1 does: reset to defaults, apply the style the run's istd
// names, fold the run's own grpprl on top, then append Pcd.Prm when it
// is a Prm0 that carries a single paragraph-scoped Sprm. Prm1 (an
// index into a Sttbf of grpprl in the Data stream) is not resolved
// here; it requires bookkeeping this decoder does not carry.
func (d *Doc) directParagraphFormatting(run paragraphRun) *formatting.ParagraphProperties {
	base := &formatting.ParagraphProperties{
		Alignment:   formatting.AlignLeft,
		LineSpacing: formatting.LineSpacing{Type: formatting.LineSpacingSingle, Value: 240},
	}

	grpprl := run.entry.Grpprl
	if len(grpprl) < 2 {
		return base
	}
	istd := uint16(grpprl[0]) | uint16(grpprl[1])<<8
	if d.Styles != nil {
		if stylePap, _, ok := d.Styles(istd); ok && stylePap != nil {
			composed := *stylePap
			base = &composed
		}
	}

	props, _ := formatting.ComposeParagraphProperties(base, grpprl[2:], d.Styles)

	if prl, ok := prm0Prl(run.pcd.Prm, structures.SgcParagraph); ok {
		composed, _ := formatting.ComposeParagraphProperties(props, encodePrl(prl), d.Styles)
		props = composed
	}

	return props
}

// ComposedCharacterProperties finds the CHPX run covering cp (MS-DOC
// 2.4.6.2) and composes its direct character formatting: the style the
// run's sprmCIstd names, the run's own grpprl, and finally Pcd.Prm.
// Returns the package's zero-value CharacterProperties when the
// document carries no PlcBteChpx.
func (d *Doc) ComposedCharacterProperties(cp structures.CP) (*formatting.CharacterProperties, error) {
	if d.BteChpx == nil {
		return &formatting.CharacterProperties{}, nil
	}

	i, err := d.Pieces.PieceIndexForCP(cp)
	if err != nil {
		return nil, err
	}
	cps := d.Pieces.CPs
	pcd := d.Pieces.Pieces[i]

	compressed := !pcd.IsUnicode
	fcPcd := pcd.FcRaw
	fc := fcPcd + 2*uint32(cp-cps[i])
	if compressed {
		fc /= 2
	}

	j := d.BteChpx.FindPage(fc)
	if j < 0 {
		return &formatting.CharacterProperties{}, nil
	}
	page, err := d.chpxPage(d.BteChpx.Pn[j])
	if err != nil {
		return nil, err
	}
	entry := page.FindEntryForFC(fc)
	if entry == nil {
		return &formatting.CharacterProperties{}, nil
	}

	return d.directCharacterFormatting(pcd, entry), nil
}

// directCharacterFormatting composes a run's properties the way
// 2.4.6.2 does: reset to defaults, fold the run's own grpprl (which
// resolves its own sprmCIstd style reference internally, CHPX having
// no separate istd prefix the way PAPX does), then append Pcd.Prm when
// it is a Prm0 scoped to the character group.
func (d *Doc) directCharacterFormatting(pcd *structures.PCD, entry *structures.FKPEntry) *formatting.CharacterProperties {
	base := &formatting.CharacterProperties{}
	props, _ := formatting.ComposeCharacterProperties(base, entry.Grpprl, d.Styles)

	if prl, ok := prm0Prl(pcd.Prm, structures.SgcCharacter); ok {
		composed, _ := formatting.ComposeCharacterProperties(props, encodePrl(prl), d.Styles)
		props = composed
	}

	return props
}

// ComposedSectionProperties finds the section containing cp and
// composes its direct formatting (MS-DOC 2.4.6.3): the SEPX at the
// section's fcSepx is a 2-byte signed grpprl length cb followed by cb
// bytes of grpprl, exactly as direct_section_formatting.c reads it.
// Returns the package's zero-value SectionProperties when the document
// carries no PlcfSed.
func (d *Doc) ComposedSectionProperties(cp structures.CP) (*formatting.SectionProperties, error) {
	if d.Sections == nil {
		return &formatting.SectionProperties{}, nil
	}

	idx, err := d.Sections.SectionIndexForCP(cp)
	if err != nil {
		return nil, err
	}
	sed := d.Sections.Sections[idx]

	off := int(sed.FcSepx)
	if off < 0 || off+2 > len(d.WordDocument) {
		return nil, fmt.Errorf("boundary: section %d's SEPX falls outside the WordDocument stream", idx)
	}
	cb := int(int16(binary.LittleEndian.Uint16(d.WordDocument[off : off+2])))
	if cb <= 0 {
		return &formatting.SectionProperties{}, nil
	}
	start := off + 2
	end := start + cb
	if end > len(d.WordDocument) {
		return nil, fmt.Errorf("boundary: section %d's grpprl (%d bytes) overruns the WordDocument stream", idx, cb)
	}

	base := &formatting.SectionProperties{}
	props, _ := formatting.ComposeSectionProperties(base, d.WordDocument[start:end])
	return props, nil
}

// prm0Prl decodes a PCD.Prm as a Prm0 (MS-DOC 2.9.193): bit 0 clear
// marks Prm0, bits 1-7 hold a reduced ispmd scoped to sgc, and the
// high byte holds a single-byte operand. A Prm1 (bit 0 set) indexes a
// Sttbf this decoder does not resolve.
func prm0Prl(prm uint16, sgc structures.SprmGroup) (structures.Prl, bool) {
	if prm&0x1 != 0 {
		return structures.Prl{}, false
	}
	ispmd := (prm >> 1) & 0x7F
	val := byte(prm >> 8)
	sprm := structures.Sprm(uint16(ispmd) | uint16(sgc)<<10 | 1<<13) // spra=1: one-byte operand
	return structures.Prl{Sprm: sprm, Operand: []byte{val}}, true
}

// encodePrl re-serializes a single Prl back into grpprl bytes so it
// can be folded through the normal Compose*Properties path alongside
// everything else.
func encodePrl(prl structures.Prl) []byte {
	out := make([]byte, 2+len(prl.Operand))
	out[0] = byte(prl.Sprm)
	out[1] = byte(prl.Sprm >> 8)
	copy(out[2:], prl.Operand)
	return out
}

// LastCPInRow finds the last character position of the table row
// containing cp (MS-DOC 2.4.5): the row's own TTP-marked paragraph if
// cp is already in one, otherwise the end of the next TTP paragraph at
// the same table depth.
func (d *Doc) LastCPInRow(cp structures.CP, ccpText uint32) (structures.CP, error) {
	lcp, props, err := d.LastCPInParagraph(cp)
	if err != nil {
		return 0, err
	}
	if props.TableDepth <= 0 {
		return 0, fmt.Errorf("boundary: cp %d is not inside a table", cp)
	}
	if props.RowTerminator {
		return lcp, nil
	}

	itapOrig := props.TableDepth
	for uint32(lcp) < ccpText {
		lcp, props, err = d.LastCPInParagraph(lcp + 1)
		if err != nil {
			return 0, err
		}
		if props.RowTerminator {
			return lcp, nil
		}
		if itapOrig == props.TableDepth && props.InnerRowTerminator {
			return lcp, nil
		}
	}
	return 0, fmt.Errorf("boundary: no row terminator found after cp %d", cp)
}

// CellDepth determines the table nesting depth of the innermost cell
// containing cp (MS-DOC 2.4.4): the composed table depth of the
// paragraph at cp, or 0 when the paragraph is not inside a table.
func (d *Doc) CellDepth(cp structures.CP) (int, error) {
	_, props, err := d.LastCPInParagraph(cp)
	if err != nil {
		return 0, err
	}
	return props.TableDepth, nil
}
