package fib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ParseFIB reads a byte slice (from the WordDocument stream)
// and parses it into a FileInformationBlock struct.
func ParseFIB(data []byte) (*FileInformationBlock, error) {
	if len(data) < 32 { // Minimum size for FibBase
		return nil, errors.New("fib: data too short for FibBase")
	}

	r := bytes.NewReader(data)
	fib := &FileInformationBlock{}

	// Read the fixed-size FibBase
	if err := binary.Read(r, binary.LittleEndian, &fib.Base); err != nil {
		return nil, fmt.Errorf("fib: could not read FibBase: %w", err)
	}

	// Validate Word document identifier
	if fib.Base.WIdent != 0xA5EC {
		return nil, errors.New("fib: invalid wIdent, not a Word document")
	}

	// Move the reader back to the start to parse the whole structure
	r.Seek(0, 0)

	if err := binary.Read(r, binary.LittleEndian, &fib.Base); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fib.Csw); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fib.FibRgW); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fib.Cslw); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fib.FibRgLw); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fib.CbRgFcLcb); err != nil {
		return nil, err
	}

	// Read the variable-length FibRgFcLcb
	// CbRgFcLcb is a count of 64-bit values (8 bytes).
	blobSize := int(fib.CbRgFcLcb) * 8
	if r.Len() < blobSize {
		return nil, fmt.Errorf("fib: data too short for RgFcLcbBlob, expected %d bytes, have %d", blobSize, r.Len())
	}
	fib.RgFcLcbBlob = make([]byte, blobSize)
	if _, err := r.Read(fib.RgFcLcbBlob); err != nil {
		return nil, fmt.Errorf("fib: could not read RgFcLcbBlob: %w", err)
	}

	// FibRgFcLcb97 (and its 2000/2002/2003/2007 extensions) is a strict
	// prefix relationship: every later nFib only appends more fc/lcb
	// pairs onto the end. Decoding as much of our known struct as the
	// blob actually holds lets one decoder serve every nFib we
	// recognize without a version switch: pad a buffer sized to the
	// full struct with the blob's own bytes (zero beyond it) and read
	// that, so a short blob from an older nFib still decodes cleanly
	// into a zero-valued tail instead of failing outright.
	fixedBuf := make([]byte, binary.Size(fib.RgFcLcb))
	copy(fixedBuf, fib.RgFcLcbBlob)
	if err := binary.Read(bytes.NewReader(fixedBuf), binary.LittleEndian, &fib.RgFcLcb); err != nil {
		return nil, fmt.Errorf("fib: could not decode FibRgFcLcb97: %w", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &fib.CswNew); err == nil && fib.CswNew > 0 {
		fib.FibRgCswNew = make([]uint16, fib.CswNew)
		binary.Read(r, binary.LittleEndian, &fib.FibRgCswNew)
	}

	return fib, nil
}

// fEncrypted (FibBase.Flags1 bit 8) marks a document whose text and
// tables are RC4/CryptoAPI encrypted.
const flagEncrypted = 0x0100

// fWhichTblStm (FibBase.Flags1 bit 9) selects which of the two table
// streams ("0Table"/"1Table") holds the document's real table data;
// Word keeps the other one around as a stale backup.
const flagWhichTblStm = 0x0200

// IsEncrypted reports whether the document's text is encrypted.
func (fib *FileInformationBlock) IsEncrypted() bool {
	return fib.Base.Flags1&flagEncrypted != 0
}

// GetTableStreamName returns the name of the table stream ("0Table" or
// "1Table") that actually holds this document's table data.
func (fib *FileInformationBlock) GetTableStreamName() string {
	if fib.Base.Flags1&flagWhichTblStm != 0 {
		return "1Table"
	}
	return "0Table"
}

// fObfuscation (FibBase.Flags2 bit 1) marks a document obfuscated with
// the weak XOR scheme used by old versions of Word, distinct from the
// RC4/CryptoAPI encryption fEncrypted names.
const flagObfuscated = 0x02

// IsObfuscated reports whether the document uses XOR obfuscation
// rather than RC4/CryptoAPI encryption.
func (fib *FileInformationBlock) IsObfuscated() bool {
	return fib.Base.Flags2&flagObfuscated != 0
}
