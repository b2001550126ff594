package formatting

import (
	"encoding/binary"

	"github.com/TalentFormula/msdoc/internal/docerr"
	"github.com/TalentFormula/msdoc/structures"
)

// TableProperties holds row-level table formatting (TRP, spec 4.8.3).
type TableProperties struct {
	Justification ParagraphAlignment
	InTable       bool
	TableDepth    int
}

// icoPalette is the 17-entry Ico color palette (spec 4.9 / sprmCHighlight).
var icoPalette = [17]Color{
	{0x00, 0x00, 0x00, false},
	{0x00, 0x00, 0x00, false},
	{0x00, 0x00, 0xFF, false},
	{0x00, 0xFF, 0xFF, false},
	{0x00, 0xFF, 0x00, false},
	{0xFF, 0x00, 0xFF, false},
	{0xFF, 0x00, 0x00, false},
	{0xFF, 0xFF, 0x00, false},
	{0xFF, 0xFF, 0xFF, false},
	{0x00, 0x00, 0x80, false},
	{0x00, 0x80, 0x80, false},
	{0x00, 0x80, 0x00, false},
	{0x80, 0x00, 0x80, false},
	{0x80, 0x00, 0x80, false},
	{0x80, 0x80, 0x00, false},
	{0x80, 0x80, 0x80, false},
	{0xC0, 0xC0, 0xC0, false},
}

func icoColor(operand byte) (Color, bool) {
	if int(operand) >= len(icoPalette) {
		return Color{}, false
	}
	return icoPalette[operand], true
}

// StyleLookup resolves an istd to the paragraph/character properties a
// style contributes, used when composing sprmPIstd/sprmCIstd.
type StyleLookup func(istd uint16) (*ParagraphProperties, *CharacterProperties, bool)

// ComposeCharacterProperties folds a run's grpprl onto a base CHP, the
// way direct_character_formatting.c's apply loop does: reset from the
// enclosing scope, then apply recognized sprms in order. Unrecognized
// sprms are reported as non-fatal UnknownSprm errors and otherwise
// skipped - it is not an error for a grpprl to carry formatting this
// decoder does not model.
func ComposeCharacterProperties(base *CharacterProperties, grpprl []byte, styles StyleLookup) (*CharacterProperties, []error) {
	props := *base
	prls, err := structures.ParseGrpprl(grpprl)
	if err != nil {
		return &props, []error{docerr.New(docerr.Format, "formatting.ComposeCharacterProperties", err)}
	}

	var warnings []error
	for _, prl := range prls {
		if prl.Sprm.Sgc() != structures.SgcCharacter {
			continue
		}
		if !applyCharSprm(&props, prl, styles) {
			warnings = append(warnings, docerr.New(docerr.UnknownSprm, "formatting.ComposeCharacterProperties", nil))
		}
	}
	return &props, warnings
}

func applyCharSprm(chp *CharacterProperties, prl structures.Prl, styles StyleLookup) bool {
	ispmd := prl.Sprm.Ispmd()
	switch ispmd {
	case structures.SprmCFBold:
		chp.Bold = structures.ResolveToggle(prl.Operand[0], chp.Bold)
		return true
	case structures.SprmCFItalic:
		chp.Italic = structures.ResolveToggle(prl.Operand[0], chp.Italic)
		return true
	case structures.SprmCFOutline:
		chp.Underline = boolToUnderline(structures.ResolveToggle(prl.Operand[0], underlineToBool(chp.Underline)))
		return true
	case structures.SprmCHighlight:
		if c, ok := icoColor(prl.Operand[0]); ok {
			chp.HighlightColor = c
		}
		return true
	case structures.SprmCHpsBi:
		if len(prl.Operand) >= 2 {
			chp.FontSize = binary.LittleEndian.Uint16(prl.Operand)
		}
		return true
	case structures.SprmCFSmallCaps:
		chp.SmallCaps = structures.ResolveToggle(prl.Operand[0], chp.SmallCaps)
		return true
	case structures.SprmCIstd:
		if styles != nil && len(prl.Operand) >= 2 {
			istd := binary.LittleEndian.Uint16(prl.Operand)
			if _, styleChp, ok := styles(istd); ok && styleChp != nil {
				*chp = *styleChp
			}
		}
		return true
	case 0x5C: // sprmCFBoldBi
		chp.Bold = structures.ResolveToggle(prl.Operand[0], chp.Bold)
		return true
	case 0x5D: // sprmCFItalicBi
		chp.Italic = structures.ResolveToggle(prl.Operand[0], chp.Italic)
		return true
	default:
		return false
	}
}

func boolToUnderline(v bool) UnderlineType {
	if v {
		return UnderlineSingle
	}
	return UnderlineNone
}

func underlineToBool(u UnderlineType) bool {
	return u != UnderlineNone
}

// ComposeParagraphProperties folds a run's grpprl onto a base PAP.
func ComposeParagraphProperties(base *ParagraphProperties, grpprl []byte, styles StyleLookup) (*ParagraphProperties, []error) {
	props := *base
	prls, err := structures.ParseGrpprl(grpprl)
	if err != nil {
		return &props, []error{docerr.New(docerr.Format, "formatting.ComposeParagraphProperties", err)}
	}

	var warnings []error
	for _, prl := range prls {
		if prl.Sprm.Sgc() != structures.SgcParagraph {
			continue
		}
		if !applyParaSprm(&props, prl, styles) {
			warnings = append(warnings, docerr.New(docerr.UnknownSprm, "formatting.ComposeParagraphProperties", nil))
		}
	}
	return &props, warnings
}

func applyParaSprm(pap *ParagraphProperties, prl structures.Prl, styles StyleLookup) bool {
	ispmd := prl.Sprm.Ispmd()
	switch ispmd {
	case structures.SprmPIstd:
		if styles != nil && len(prl.Operand) >= 2 {
			istd := binary.LittleEndian.Uint16(prl.Operand)
			if stylePap, _, ok := styles(istd); ok && stylePap != nil {
				*pap = *stylePap
			}
		}
		return true
	case structures.SprmPDyaBefore:
		if len(prl.Operand) >= 2 {
			pap.SpaceBefore = binary.LittleEndian.Uint16(prl.Operand)
		}
		return true
	case structures.SprmPDyaAfter:
		if len(prl.Operand) >= 2 {
			pap.SpaceAfter = binary.LittleEndian.Uint16(prl.Operand)
		}
		return true
	case structures.SprmPJc80, structures.SprmPJc:
		if len(prl.Operand) >= 1 {
			pap.Alignment = justificationFromByte(prl.Operand[0])
		}
		return true
	case 0x0E: // sprmPDxaLeft80
		if len(prl.Operand) >= 2 {
			pap.LeftIndent = int32(binary.LittleEndian.Uint16(prl.Operand))
		}
		return true
	case 0x11: // sprmPDxaLeft180
		if len(prl.Operand) >= 2 {
			pap.FirstLineIndent = int32(binary.LittleEndian.Uint16(prl.Operand))
		}
		return true
	case 0x17: // sprmPFTtp: paragraph mark terminates a table row
		pap.RowTerminator = structures.ResolveToggle(prl.Operand[0], pap.RowTerminator)
		return true
	case 0x49: // sprmPItap: absolute table nesting depth
		if len(prl.Operand) >= 4 {
			pap.TableDepth = int(int32(binary.LittleEndian.Uint32(prl.Operand)))
		}
		return true
	case 0x4A: // sprmPDtap: signed increment to table nesting depth
		if len(prl.Operand) >= 4 {
			pap.TableDepth += int(int32(binary.LittleEndian.Uint32(prl.Operand)))
		}
		return true
	case 0x4C: // sprmPFInnerTtp
		pap.InnerRowTerminator = structures.ResolveToggle(prl.Operand[0], pap.InnerRowTerminator)
		return true
	default:
		return false
	}
}

func justificationFromByte(b byte) ParagraphAlignment {
	switch b {
	case 0:
		return AlignLeft
	case 1:
		return AlignCenter
	case 2:
		return AlignRight
	default:
		return AlignJustify
	}
}

// ComposeSectionProperties folds a run's grpprl onto a base SEP. The
// reference's section applier recognizes no ispmds at all (spec 4.9);
// every sgcSec Prl is reported as an unrecognized-but-non-fatal mark
// and otherwise skipped, matching that authoritative emptiness.
func ComposeSectionProperties(base *SectionProperties, grpprl []byte) (*SectionProperties, []error) {
	props := *base
	prls, err := structures.ParseGrpprl(grpprl)
	if err != nil {
		return &props, []error{docerr.New(docerr.Format, "formatting.ComposeSectionProperties", err)}
	}

	var warnings []error
	for _, prl := range prls {
		if prl.Sprm.Sgc() != structures.SgcSection {
			continue
		}
		warnings = append(warnings, docerr.New(docerr.UnknownSprm, "formatting.ComposeSectionProperties", nil))
	}
	return &props, warnings
}

// ComposeTableProperties folds a row's grpprl onto a base TRP.
func ComposeTableProperties(base *TableProperties, grpprl []byte) (*TableProperties, []error) {
	props := *base
	prls, err := structures.ParseGrpprl(grpprl)
	if err != nil {
		return &props, []error{docerr.New(docerr.Format, "formatting.ComposeTableProperties", err)}
	}

	var warnings []error
	for _, prl := range prls {
		if prl.Sprm.Sgc() != structures.SgcTable {
			continue
		}
		if !applyTableSprm(&props, prl) {
			warnings = append(warnings, docerr.New(docerr.UnknownSprm, "formatting.ComposeTableProperties", nil))
		}
	}
	return &props, warnings
}

func applyTableSprm(trp *TableProperties, prl structures.Prl) bool {
	ispmd := prl.Sprm.Ispmd()
	switch ispmd {
	case structures.SprmTJc90, structures.SprmTJc:
		if len(prl.Operand) >= 2 {
			n := binary.LittleEndian.Uint16(prl.Operand)
			switch n {
			case 0:
				trp.Justification = AlignLeft
			case 1:
				trp.Justification = AlignCenter
			case 2:
				trp.Justification = AlignRight
			default:
				trp.Justification = AlignLeft
			}
		}
		return true
	default:
		return false
	}
}
