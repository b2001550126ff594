package structures

import (
	"encoding/binary"
	"fmt"
)

// FKP (Formatted Disk Page) is a 512-byte page containing formatting data.
// There are two kinds: PapxFkp (paragraph properties) and ChpxFkp
// (character properties). Both share the same outer shape: an
// ascending array of FC boundaries, followed by one descriptor per run,
// followed by a trailing count byte.
const FKPSize = 512

// FKPType indicates the type of formatting stored in the FKP.
type FKPType int

const (
	FKPTypeUnknown FKPType = iota
	FKPTypeCHP             // Character properties
	FKPTypePAP             // Paragraph properties
)

// FKPEntry is one run's worth of formatting inside a page: the [FC,
// nextFC) range it covers and the raw grpprl bytes describing it.
type FKPEntry struct {
	FC     uint32 // Start file-character offset for this run
	FCEnd  uint32 // One past the last file-character offset covered by this run
	Grpprl []byte // Raw PAPX/CHPX bytes after the length byte(s) (istd-prefixed for PAPX)
}

// FKP represents a parsed formatted disk page.
type FKP struct {
	Data    []byte // Raw 512-byte page data
	Type    FKPType
	Entries []FKPEntry
}

// BxPap is the fixed-size descriptor following rgfc in a PapxFkp: a
// 1-byte page-relative word offset to the papx, followed by a 12-byte
// cached paragraph-height exception that this decoder does not use.
type BxPap struct {
	BOffset byte
	Phe     [12]byte
}

// ParseFKP parses an FKP from raw 512-byte page data.
func ParseFKP(data []byte, fkpType FKPType) (*FKP, error) {
	if len(data) != FKPSize {
		return nil, fmt.Errorf("fkp: invalid data size %d, expected %d", len(data), FKPSize)
	}

	fkp := &FKP{
		Data: make([]byte, FKPSize),
		Type: fkpType,
	}
	copy(fkp.Data, data)

	count := int(data[FKPSize-1])
	if count > 255 {
		return nil, fmt.Errorf("fkp: invalid entry count %d", count)
	}

	switch fkpType {
	case FKPTypeCHP:
		return parseCHPXFKP(fkp, count)
	case FKPTypePAP:
		return parsePAPXFKP(fkp, count)
	default:
		return fkp, nil
	}
}

// rgfc reads the count+1 ascending FC boundaries that open every FKP.
func rgfc(data []byte, count int) ([]uint32, error) {
	need := 4 * (count + 1)
	if need > len(data)-1 {
		return nil, fmt.Errorf("fkp: rgfc for count %d overruns the page", count)
	}
	fcs := make([]uint32, count+1)
	for i := 0; i <= count; i++ {
		fcs[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return fcs, nil
}

// parsePAPXFKP parses a paragraph properties FKP: rgfc, then a BxPap
// (13 bytes: 1-byte bOffset + 12-byte reserved PHE) per run. bOffset*2
// is the page-relative byte offset of the papx; a zero bOffset means
// the run uses the style sheet's istd-0 defaults with no exception
// bytes (an empty grpprl).
func parsePAPXFKP(fkp *FKP, count int) (*FKP, error) {
	fcs, err := rgfc(fkp.Data, count)
	if err != nil {
		return nil, err
	}

	base := 4 * (count + 1)
	if base+13*count > FKPSize-1 {
		return nil, fmt.Errorf("fkp: too many entries (%d) for PAPX FKP", count)
	}

	entries := make([]FKPEntry, count)
	for i := 0; i < count; i++ {
		rec := fkp.Data[base+i*13 : base+i*13+13]
		bx := BxPap{BOffset: rec[0]}
		copy(bx.Phe[:], rec[1:13])

		entry := FKPEntry{FC: fcs[i], FCEnd: fcs[i+1]}
		if bx.BOffset != 0 {
			grpprl, err := readPapxAt(fkp.Data, int(bx.BOffset)*2)
			if err != nil {
				return nil, fmt.Errorf("fkp: papx entry %d: %w", i, err)
			}
			entry.Grpprl = grpprl
		}
		entries[i] = entry
	}

	fkp.Entries = entries
	return fkp, nil
}

// readPapxAt reads a PAPX record at a page-relative byte offset: one
// byte cb; a nonzero cb is followed by 2*cb-1 bytes of istd+grpprl,
// while cb == 0 is followed by a second byte cb' and then 2*cb' bytes
// of istd+grpprl.
func readPapxAt(page []byte, offset int) ([]byte, error) {
	if offset < 0 || offset >= len(page) {
		return nil, fmt.Errorf("offset %d out of page bounds", offset)
	}
	cbHalf := int(page[offset])
	cb := 2*cbHalf - 1
	start := offset + 1
	if cbHalf == 0 {
		// Long form: the next byte cb' gives the length in words.
		if start+1 > len(page) {
			return nil, fmt.Errorf("long-form papx length overruns page at %d", offset)
		}
		cb = 2 * int(page[start])
		start++
	}
	end := start + cb
	if end > len(page) {
		return nil, fmt.Errorf("papx record at %d (len %d) overruns page", offset, cb)
	}
	out := make([]byte, cb)
	copy(out, page[start:end])
	return out, nil
}

// parseCHPXFKP parses a character properties FKP: rgfc, then one
// 1-byte page-relative word offset per run. Offset*2 is the byte
// offset of the chpx; a zero offset means an empty grpprl (the run
// carries only the properties inherited from its paragraph style).
func parseCHPXFKP(fkp *FKP, count int) (*FKP, error) {
	fcs, err := rgfc(fkp.Data, count)
	if err != nil {
		return nil, err
	}

	base := 4 * (count + 1)
	if base+count > FKPSize-1 {
		return nil, fmt.Errorf("fkp: too many entries (%d) for CHPX FKP", count)
	}

	entries := make([]FKPEntry, count)
	for i := 0; i < count; i++ {
		offByte := int(fkp.Data[base+i])
		entry := FKPEntry{FC: fcs[i], FCEnd: fcs[i+1]}
		if offByte != 0 {
			grpprl, err := readChpxAt(fkp.Data, offByte*2)
			if err != nil {
				return nil, fmt.Errorf("fkp: chpx entry %d: %w", i, err)
			}
			entry.Grpprl = grpprl
		}
		entries[i] = entry
	}

	fkp.Entries = entries
	return fkp, nil
}

// readChpxAt reads a CHPX record at a page-relative byte offset: one
// length byte cb, followed by cb bytes of grpprl.
func readChpxAt(page []byte, offset int) ([]byte, error) {
	if offset < 0 || offset >= len(page) {
		return nil, fmt.Errorf("offset %d out of page bounds", offset)
	}
	cb := int(page[offset])
	start := offset + 1
	end := start + cb
	if end > len(page) {
		return nil, fmt.Errorf("chpx record at %d (len %d) overruns page", offset, cb)
	}
	out := make([]byte, cb)
	copy(out, page[start:end])
	return out, nil
}

// GetEntryAt returns the formatting entry at the given index.
func (fkp *FKP) GetEntryAt(index int) (*FKPEntry, error) {
	if index < 0 || index >= len(fkp.Entries) {
		return nil, fmt.Errorf("fkp: invalid entry index %d", index)
	}
	return &fkp.Entries[index], nil
}

// FindEntryForFC finds the formatting entry that applies to the given
// file character position: the run with the largest FC <= fc, or nil when
// fc precedes every run. FCEnd is not checked, so a fc at or past the last
// run's FCEnd still returns that run.
func (fkp *FKP) FindEntryForFC(fc uint32) *FKPEntry {
	var best *FKPEntry
	for i := range fkp.Entries {
		entry := &fkp.Entries[i]
		if entry.FC <= fc && (best == nil || entry.FC > best.FC) {
			best = entry
		}
	}
	return best
}
