// Package style resolves the STSH style sheet: the istdBase
// inheritance chain, the stk-dispatched grLPUpxSw layouts, and the
// pre/post-2000 STD record shape, per the algorithm in MS-DOC 2.4.6.5.
package style

import (
	"encoding/binary"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/TalentFormula/msdoc/formatting"
)

// Stk identifies what a style contributes: paragraph, character,
// table, or list formatting.
type Stk byte

const (
	StkParagraph Stk = 1
	StkCharacter Stk = 2
	StkTable     Stk = 3
	StkList      Stk = 4
)

const noBaseStyle = 0x0FFF

// std is one parsed style definition (STD), lazily decoded from its
// raw LPStd bytes on first use.
type std struct {
	istdBase uint16
	stk      Stk
	name     string
	papxGrp  []byte // UpxPapx grpprl, stk == StkParagraph only
	chpxGrp  []byte // UpxChpx grpprl
}

// Sheet is a parsed STSH style sheet.
type Sheet struct {
	cbSTDBaseInFile uint16
	styles          []*std // index == istd; nil entries are empty/unused slots
}

// ParseSTSH parses the STSH structure found at
// FibRgFcLcb97.fcStshf/lcbStshf in the Table Stream.
func ParseSTSH(data []byte) (*Sheet, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("style: STSH too short")
	}
	cbStshi := int(binary.LittleEndian.Uint16(data[0:2]))
	if 2+cbStshi > len(data) {
		return nil, fmt.Errorf("style: STSHI of %d bytes overruns STSH", cbStshi)
	}
	stshi := data[2 : 2+cbStshi]
	if len(stshi) < 20 {
		return nil, fmt.Errorf("style: STSHI too short for Stshif")
	}
	cstd := binary.LittleEndian.Uint16(stshi[0:2])
	cbSTDBaseInFile := binary.LittleEndian.Uint16(stshi[2:4])
	if cbSTDBaseInFile != 0x000A && cbSTDBaseInFile != 0x0012 {
		return nil, fmt.Errorf("style: unrecognized cbSTDBaseInFile 0x%04X", cbSTDBaseInFile)
	}

	sheet := &Sheet{cbSTDBaseInFile: cbSTDBaseInFile, styles: make([]*std, cstd)}

	pos := 2 + cbStshi
	for i := 0; i < int(cstd); i++ {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("style: truncated LPStd at istd %d", i)
		}
		cbStd := int(int16(binary.LittleEndian.Uint16(data[pos : pos+2])))
		pos += 2
		if cbStd < 0 || pos+cbStd > len(data) {
			return nil, fmt.Errorf("style: LPStd of %d bytes overruns STSH at istd %d", cbStd, i)
		}
		if cbStd > 0 {
			parsed, err := parseSTD(data[pos:pos+cbStd], cbSTDBaseInFile)
			if err != nil {
				return nil, fmt.Errorf("style: istd %d: %w", i, err)
			}
			sheet.styles[i] = parsed
		}
		pos += cbStd
		if cbStd%2 != 0 {
			pos++ // LPStd records pad to an even boundary
		}
	}

	return sheet, nil
}

func parseSTD(data []byte, cbSTDBaseInFile uint16) (*std, error) {
	if len(data) < int(cbSTDBaseInFile) {
		return nil, fmt.Errorf("STD shorter than its own StdfBase")
	}
	// StdfBase: sti/flags(2) + stk/istdBase(2) + cupx/istdNext(2) + bchUpe(2) + grfstd(2) = 10 bytes
	if len(data) < 10 {
		return nil, fmt.Errorf("STD too short for StdfBase")
	}
	stkIstdBase := binary.LittleEndian.Uint16(data[2:4])
	cupxIstdNext := binary.LittleEndian.Uint16(data[4:6])
	istdBase := (stkIstdBase & 0xFFF0) >> 4
	stk := Stk(stkIstdBase & 0xF)
	cupx := byte(cupxIstdNext & 0xF)

	p := data[cbSTDBaseInFile:]
	name, nameLen, err := parseXstz(p)
	if err != nil {
		return nil, fmt.Errorf("style name: %w", err)
	}
	ptr := p[nameLen:]

	s := &std{istdBase: istdBase, stk: stk, name: name}

	switch stk {
	case StkParagraph:
		if err := parseStkParaGrLPUpxSw(s, ptr, cupx); err != nil {
			return nil, err
		}
	case StkCharacter:
		if err := parseStkCharGrLPUpxSw(s, ptr); err != nil {
			return nil, err
		}
	default:
		// Table and list styles carry no direct paragraph/character
		// grpprl this decoder composes; nothing further to extract.
	}

	return s, nil
}

// parseXstz reads a length-prefixed, null-terminated UTF-16LE string
// (Xstz: cch u16, cch UTF-16 chars, one more u16 null terminator) and
// returns its decoded text and total byte length.
func parseXstz(data []byte) (string, int, error) {
	if len(data) < 2 {
		return "", 0, fmt.Errorf("truncated Xst length")
	}
	cch := int(binary.LittleEndian.Uint16(data[0:2]))
	need := 2 + cch*2 + 2
	if need > len(data) {
		return "", 0, fmt.Errorf("Xstz of %d chars overruns STD", cch)
	}
	runes := make([]uint16, cch)
	for i := 0; i < cch; i++ {
		runes[i] = binary.LittleEndian.Uint16(data[2+i*2 : 4+i*2])
	}
	return decodeUTF16(runes), need, nil
}

func decodeUTF16(units []uint16) string {
	out := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
			lo := units[i+1]
			if lo >= 0xDC00 && lo <= 0xDFFF {
				r := (rune(u-0xD800)<<10 | rune(lo-0xDC00)) + 0x10000
				out = append(out, r)
				i++
				continue
			}
		}
		out = append(out, rune(u))
	}
	return string(out)
}

// parseStkParaGrLPUpxSw reads StkParaGRLPUPX: an LPUpxPapx followed by
// an LPUpxChpx. The UpxPapx's leading 2-byte istd is skipped whenever
// cbUpx is at least 2, so papxGrp holds only the grpprl after it.
func parseStkParaGrLPUpxSw(s *std, ptr []byte, cupx byte) error {
	if len(ptr) < 1 {
		return fmt.Errorf("StkParaGRLPUPX: truncated UpxPapx length")
	}
	cbUpx := int(ptr[0])
	fc := 1
	// Guard: a well-formed UpxPapx here always carries at least the
	// 2-byte istd header: the reference's istd-equality special case
	// reads ptr[2] unconditionally, so this decoder requires it too.
	if len(ptr) < fc+2 {
		return fmt.Errorf("StkParaGRLPUPX: truncated UpxPapx istd header")
	}
	fc = 2
	if cbUpx >= 2 {
		fc += 2
		cbUpx -= 2
	}
	if fc+cbUpx > len(ptr) {
		return fmt.Errorf("StkParaGRLPUPX: UpxPapx grpprl of %d bytes overruns style", cbUpx)
	}
	s.papxGrp = append([]byte(nil), ptr[fc:fc+cbUpx]...)

	fc += cbUpx
	if cbUpx%2 != 0 {
		fc++
	}
	if fc+2 > len(ptr) {
		// No character grpprl present; treat as empty rather than fatal.
		return nil
	}
	chpxLen := int(binary.LittleEndian.Uint16(ptr[fc : fc+2]))
	fc += 2
	if fc+chpxLen > len(ptr) {
		return fmt.Errorf("StkParaGRLPUPX: UpxChpx grpprl of %d bytes overruns style", chpxLen)
	}
	s.chpxGrp = append([]byte(nil), ptr[fc:fc+chpxLen]...)

	_ = cupx // revision-marked (cpux==3) trailing block carries no properties this decoder composes
	return nil
}

// parseStkCharGrLPUpxSw reads StkCharGRLPUPX: a single LPUpxChpx.
func parseStkCharGrLPUpxSw(s *std, ptr []byte) error {
	if len(ptr) < 2 {
		return fmt.Errorf("StkCharGRLPUPX: truncated UpxChpx length")
	}
	cbUpx := int(binary.LittleEndian.Uint16(ptr[0:2]))
	if 2+cbUpx > len(ptr) {
		return fmt.Errorf("StkCharGRLPUPX: UpxChpx grpprl of %d bytes overruns style", cbUpx)
	}
	s.chpxGrp = append([]byte(nil), ptr[2:2+cbUpx]...)
	return nil
}

// Resolved holds the fully composed paragraph and character
// properties that a style (and its ancestors) contribute.
type Resolved struct {
	Pap *formatting.ParagraphProperties
	Chp *formatting.CharacterProperties
}

// Resolve walks the istdBase inheritance chain ancestor-first (step 5
// of 2.4.6.5) and folds each style's grpprl on top, guarding against a
// cycle with a bitset sized to the style count - a malformed document
// that loops its istdBase chain stops at the sheet's own style count
// rather than recursing forever.
func (sheet *Sheet) Resolve(istd uint16) (*Resolved, error) {
	defaults := &Resolved{
		Pap: &formatting.ParagraphProperties{Alignment: formatting.AlignLeft},
		Chp: &formatting.CharacterProperties{FontSize: 24, Color: formatting.Color{Auto: true}, Scale: 100},
	}
	seen := bitset.New(uint(len(sheet.styles)) + 1)
	return sheet.resolve(istd, defaults, seen)
}

func (sheet *Sheet) resolve(istd uint16, base *Resolved, seen *bitset.BitSet) (*Resolved, error) {
	if int(istd) >= len(sheet.styles) {
		return base, nil
	}
	if seen.Test(uint(istd)) {
		return base, fmt.Errorf("style: cycle detected at istd %d", istd)
	}
	seen.Set(uint(istd))

	s := sheet.styles[istd]
	if s == nil {
		return base, nil
	}

	resolved := base
	if s.istdBase != noBaseStyle {
		var err error
		resolved, err = sheet.resolve(s.istdBase, base, seen)
		if err != nil {
			return resolved, err
		}
	}

	pap := *resolved.Pap
	chp := *resolved.Chp
	if len(s.papxGrp) > 0 {
		composed, _ := formatting.ComposeParagraphProperties(&pap, s.papxGrp, nil)
		pap = *composed
	}
	if len(s.chpxGrp) > 0 {
		composed, _ := formatting.ComposeCharacterProperties(&chp, s.chpxGrp, nil)
		chp = *composed
	}
	pap.StyleName = s.name

	return &Resolved{Pap: &pap, Chp: &chp}, nil
}

// Lookup adapts Sheet.Resolve to formatting.StyleLookup.
func (sheet *Sheet) Lookup(istd uint16) (*formatting.ParagraphProperties, *formatting.CharacterProperties, bool) {
	resolved, err := sheet.Resolve(istd)
	if err != nil || resolved == nil {
		return nil, nil, false
	}
	return resolved.Pap, resolved.Chp, true
}
