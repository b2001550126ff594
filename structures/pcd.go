package structures

import (
	"encoding/binary"
	"fmt"
)

// PCD (Piece Descriptor) describes a piece of text in the document.
// Each piece references a contiguous run of text in the WordDocument stream.
type PCD struct {
	FNoEncryption bool   // If true, piece is not encrypted
	FComplex      bool   // If true, piece contains complex formatting
	FC            uint32 // File Character offset into the WordDocument stream
	FcRaw         uint32 // The 30-bit masked fc before the compressed/2 division, used by boundary arithmetic that stays in doubled units until its final division
	IsUnicode     bool   // If true, text is UTF-16LE; if false, text is 8-bit compressed
	Prm           uint16 // Single embedded Sprm (Prm0) or a Prm1 index, see ispmd 0
}

// ParsePCD parses a PCD structure from an 8-byte data element: 2 bytes
// of flags, 4 bytes of packed fcCompressedRaw, 2 bytes of Prm.
func ParsePCD(data []byte) (*PCD, error) {
	if len(data) != 8 {
		return nil, fmt.Errorf("pcd: invalid data size %d, expected 8", len(data))
	}

	pcd := &PCD{}

	flags := binary.LittleEndian.Uint16(data[0:2])
	pcd.FNoEncryption = (flags & 0x0001) != 0
	pcd.FComplex = (flags & 0x0002) != 0

	raw := binary.LittleEndian.Uint32(data[2:6])

	// Bit 30 set means 8-bit compressed text; clear means UTF-16LE.
	fCompressed := (raw & 0x40000000) != 0
	pcd.IsUnicode = !fCompressed
	pcd.FcRaw = raw & 0x3FFFFFFF
	offset := pcd.FcRaw
	if fCompressed {
		offset /= 2
	}
	pcd.FC = offset

	pcd.Prm = binary.LittleEndian.Uint16(data[6:8])

	return pcd, nil
}

// GetActualFC returns the actual byte offset into the WordDocument
// stream at which this piece's text begins. The compressed/unicode
// division is already folded into FC by ParsePCD.
func (pcd *PCD) GetActualFC() uint32 {
	return pcd.FC
}

// PlcPcd represents a PLC of Piece Descriptors (the piece table).
type PlcPcd struct {
	*PLC
	Pieces []*PCD
}

// ParsePlcPcd parses a piece table from raw data.
func ParsePlcPcd(data []byte) (*PlcPcd, error) {
	plc, err := ParsePLC(data, 8) // PCDs are 8 bytes each
	if err != nil {
		return nil, fmt.Errorf("plcpcd: failed to parse PLC: %w", err)
	}

	pieces := make([]*PCD, len(plc.Data))
	for i, pcdData := range plc.Data {
		pcd, err := ParsePCD(pcdData)
		if err != nil {
			return nil, fmt.Errorf("plcpcd: failed to parse PCD %d: %w", i, err)
		}
		pieces[i] = pcd
	}

	return &PlcPcd{
		PLC:    plc,
		Pieces: pieces,
	}, nil
}

// GetPieceAt returns the piece descriptor at the given index.
func (plcpcd *PlcPcd) GetPieceAt(index int) (*PCD, error) {
	if index < 0 || index >= len(plcpcd.Pieces) {
		return nil, fmt.Errorf("plcpcd: invalid index %d", index)
	}
	return plcpcd.Pieces[index], nil
}

// PieceIndexForCP returns the index into Pieces of the piece
// containing cp: the largest i such that CPs[i] <= cp, the shared
// first step of every MS-DOC 2.4 boundary and retrieval algorithm.
func (plcpcd *PlcPcd) PieceIndexForCP(cp CP) (int, error) {
	i := -1
	for idx := 0; idx < len(plcpcd.CPs); idx++ {
		if plcpcd.CPs[idx] <= cp {
			i = idx
		} else {
			break
		}
	}
	if i < 0 || i >= len(plcpcd.Pieces) {
		return 0, fmt.Errorf("plcpcd: cp %d is outside the document's character range", cp)
	}
	return i, nil
}

// GetTextRange returns the character range and piece descriptor for a given piece index.
func (plcpcd *PlcPcd) GetTextRange(index int) (start, end CP, pcd *PCD, err error) {
	if index < 0 || index >= len(plcpcd.Pieces) {
		return 0, 0, nil, fmt.Errorf("plcpcd: invalid index %d", index)
	}
	
	start, end, err = plcpcd.GetRange(index)
	if err != nil {
		return 0, 0, nil, err
	}
	
	return start, end, plcpcd.Pieces[index], nil
}