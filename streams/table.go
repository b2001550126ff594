package streams

import (
	"fmt"

	"github.com/TalentFormula/msdoc/structures"
)

// TableStream represents either the 0Table or 1Table stream containing formatting information.
type TableStream struct {
	Data []byte
	Name string // "0Table" or "1Table"
}

// NewTableStream creates a new Table stream processor.
func NewTableStream(data []byte, name string) *TableStream {
	return &TableStream{
		Data: data,
		Name: name,
	}
}

func (ts *TableStream) slice(fc, lcb uint32, what string) ([]byte, error) {
	if lcb == 0 {
		return nil, nil
	}
	if fc+lcb > uint32(len(ts.Data)) {
		return nil, fmt.Errorf("table: %s location out of bounds in %s", what, ts.Name)
	}
	return ts.Data[fc : fc+lcb], nil
}

// GetPieceTable extracts the piece table (PlcPcd) out of the Clx,
// skipping any Prc property-exception entries that precede it.
func (ts *TableStream) GetPieceTable(fcClx, lcbClx uint32) (*structures.PlcPcd, error) {
	clx, err := ts.slice(fcClx, lcbClx, "Clx")
	if err != nil {
		return nil, err
	}
	if clx == nil {
		return nil, fmt.Errorf("table: no piece table data")
	}
	return structures.ParseCLX(clx)
}

// GetStyleSheet extracts the raw STSH bytes from the specified location.
func (ts *TableStream) GetStyleSheet(fcStsh, lcbStsh uint32) ([]byte, error) {
	data, err := ts.slice(fcStsh, lcbStsh, "style sheet")
	if err != nil || data == nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// GetSectionTable extracts and parses the section descriptor PLC
// (PlcfSed: 12-byte SED per section).
func (ts *TableStream) GetSectionTable(fcPlcfsed, lcbPlcfsed uint32) (*structures.PlcfSed, error) {
	data, err := ts.slice(fcPlcfsed, lcbPlcfsed, "section table")
	if err != nil || data == nil {
		return nil, err
	}
	return structures.ParsePlcfSed(data)
}

// GetCharacterFormattingTable extracts and parses the character
// property bin table (PlcBteChpx).
func (ts *TableStream) GetCharacterFormattingTable(fcPlcfbteChpx, lcbPlcfbteChpx uint32) (*structures.PlcBte, error) {
	data, err := ts.slice(fcPlcfbteChpx, lcbPlcfbteChpx, "character formatting table")
	if err != nil || data == nil {
		return nil, err
	}
	return structures.ParsePlcBte(data)
}

// GetParagraphFormattingTable extracts and parses the paragraph
// property bin table (PlcBtePapx).
func (ts *TableStream) GetParagraphFormattingTable(fcPlcfbtePapx, lcbPlcfbtePapx uint32) (*structures.PlcBte, error) {
	data, err := ts.slice(fcPlcfbtePapx, lcbPlcfbtePapx, "paragraph formatting table")
	if err != nil || data == nil {
		return nil, err
	}
	return structures.ParsePlcBte(data)
}

// GetFontTable extracts the raw font information STTB bytes.
func (ts *TableStream) GetFontTable(fcSttbfffn, lcbSttbfffn uint32) ([]byte, error) {
	data, err := ts.slice(fcSttbfffn, lcbSttbfffn, "font table")
	if err != nil || data == nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
