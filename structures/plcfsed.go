package structures

import (
	"encoding/binary"
	"fmt"
)

// SED (Section Descriptor) is the 12-byte data element of a PlcfSed:
// a 2-byte unused field, a 4-byte fcSepx (file offset of this
// section's SEPX), and two more unused fields.
type SED struct {
	FcSepx uint32
}

// PlcfSed is the Plc of section descriptors (spec 4.8.4), giving the
// ascending CP boundaries between sections.
type PlcfSed struct {
	*PLC
	Sections []SED
}

// ParsePlcfSed parses a PlcfSed from raw table-stream bytes.
func ParsePlcfSed(data []byte) (*PlcfSed, error) {
	plc, err := ParsePLC(data, 12)
	if err != nil {
		return nil, fmt.Errorf("plcfsed: %w", err)
	}
	seds := make([]SED, len(plc.Data))
	for i, raw := range plc.Data {
		if len(raw) < 6 {
			return nil, fmt.Errorf("plcfsed: SED %d too short", i)
		}
		seds[i] = SED{FcSepx: binary.LittleEndian.Uint32(raw[2:6])}
	}
	return &PlcfSed{PLC: plc, Sections: seds}, nil
}

// FirstCPInSection returns the first CP of the section containing cp,
// per spec 4.8.4: the largest aCP[i] <= cp.
func (p *PlcfSed) FirstCPInSection(cp CP) (CP, error) {
	i := -1
	for idx := 0; idx < len(p.CPs); idx++ {
		if p.CPs[idx] <= cp {
			i = idx
		} else {
			break
		}
	}
	if i < 0 {
		return 0, fmt.Errorf("plcfsed: cp %d precedes the first section", cp)
	}
	return p.CPs[i], nil
}

// LastCPInSection returns the last CP of the section containing cp,
// per spec 4.8.4: the smallest aCP[i] > cp, minus one.
func (p *PlcfSed) LastCPInSection(cp CP) (CP, error) {
	for idx := 0; idx < len(p.CPs); idx++ {
		if p.CPs[idx] > cp {
			if p.CPs[idx] == 0 {
				return 0, fmt.Errorf("plcfsed: no section boundary past cp %d", cp)
			}
			return p.CPs[idx] - 1, nil
		}
	}
	return 0, fmt.Errorf("plcfsed: cp %d is past the last section boundary", cp)
}

// SectionIndexForCP returns the index into Sections whose range
// contains cp.
func (p *PlcfSed) SectionIndexForCP(cp CP) (int, error) {
	i := -1
	for idx := 0; idx < len(p.CPs)-1; idx++ {
		if p.CPs[idx] <= cp {
			i = idx
		} else {
			break
		}
	}
	if i < 0 {
		return 0, fmt.Errorf("plcfsed: cp %d out of range", cp)
	}
	return i, nil
}
