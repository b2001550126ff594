package structures

import (
	"encoding/binary"
	"fmt"
)

// PLC (Plex) is a common structure in .doc files. It is an array of
// Character Positions (CPs) followed by an array of data elements.
// The number of CPs is always one more than the number of data elements.
type PLC struct {
	CPs  []CP
	Data [][]byte // Generic representation of data elements
}

// ParsePLC parses a generic Plc whose data elements are each elemSize
// bytes wide. The aCP array has one more element than the data array,
// so the element count N satisfies len(data) == 4*(N+1) + elemSize*N.
func ParsePLC(data []byte, elemSize int) (*PLC, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("plc: invalid element size %d", elemSize)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("plc: data too short for a single CP")
	}
	n := (len(data) - 4) / (4 + elemSize)
	if n < 0 || 4*(n+1)+elemSize*n != len(data) {
		return nil, fmt.Errorf("plc: data size %d not consistent with element size %d", len(data), elemSize)
	}

	cps := make([]CP, n+1)
	for i := 0; i <= n; i++ {
		cps[i] = CP(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}

	elements := make([][]byte, n)
	base := 4 * (n + 1)
	for i := 0; i < n; i++ {
		elements[i] = data[base+i*elemSize : base+(i+1)*elemSize]
	}

	return &PLC{CPs: cps, Data: elements}, nil
}

// Count returns the number of data elements in the Plc.
func (p *PLC) Count() int {
	return len(p.Data)
}

// GetRange returns the [start, end) CP range covered by element i.
func (p *PLC) GetRange(i int) (start, end CP, err error) {
	if i < 0 || i+1 >= len(p.CPs) {
		return 0, 0, fmt.Errorf("plc: index %d out of range", i)
	}
	return p.CPs[i], p.CPs[i+1], nil
}

// GetDataAt returns the raw data element at index i.
func (p *PLC) GetDataAt(i int) ([]byte, error) {
	if i < 0 || i >= len(p.Data) {
		return nil, fmt.Errorf("plc: index %d out of range", i)
	}
	return p.Data[i], nil
}

// PlcBte is the shape shared by PlcBtePapx and PlcBteChpx (spec 4.5):
// aFc[0..N] (N+1 ascending file-character offsets, aFc[N] one past the
// last covered byte) and aPn[0..N-1] (one 512-byte page number per
// bin). N is derived from the region's byte length L as
// (L/4 - 1)/2, so aFc holds (L/4 - 1)/2 + 1 entries.
type PlcBte struct {
	Fc []uint32
	Pn []uint32
}

// ParsePlcBte parses a PlcBtePapx or PlcBteChpx from raw table-stream
// bytes.
func ParsePlcBte(data []byte) (*PlcBte, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("plcbte: invalid data length %d", len(data))
	}
	words := len(data) / 4
	n := (words - 1) / 2
	if 4*(n+1)+4*n != len(data) {
		return nil, fmt.Errorf("plcbte: data length %d inconsistent with derived N=%d", len(data), n)
	}

	fc := make([]uint32, n+1)
	for i := 0; i <= n; i++ {
		fc[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}

	pn := make([]uint32, n)
	base := 4 * (n + 1)
	for i := 0; i < n; i++ {
		raw := binary.LittleEndian.Uint32(data[base+i*4 : base+(i+1)*4])
		pn[i] = raw & 0x3FFFFF // low 22 bits is the page number
	}

	return &PlcBte{Fc: fc, Pn: pn}, nil
}

// FindPage returns the largest index j such that aFc[j] <= fc, or -1
// if fc precedes the whole table or the table is exhausted (aFc[N] <= fc).
func (b *PlcBte) FindPage(fc uint32) int {
	if len(b.Fc) == 0 || b.Fc[len(b.Fc)-1] <= fc {
		return -1
	}
	j := -1
	for i := 0; i < len(b.Fc)-1; i++ {
		if b.Fc[i] <= fc {
			j = i
		} else {
			break
		}
	}
	return j
}
