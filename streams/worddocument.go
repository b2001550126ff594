package streams

import (
	"github.com/TalentFormula/msdoc/fib"
)

// WordDocumentStream represents the main document stream containing text and the FIB.
type WordDocumentStream struct {
	Data []byte
	FIB  *fib.FileInformationBlock
}

// NewWordDocumentStream creates a new WordDocument stream processor.
func NewWordDocumentStream(data []byte) (*WordDocumentStream, error) {
	// Parse the FIB from the beginning of the stream
	parsedFIB, err := fib.ParseFIB(data)
	if err != nil {
		return nil, err
	}

	return &WordDocumentStream{
		Data: data,
		FIB:  parsedFIB,
	}, nil
}

// GetMainTextLength returns the length of the main document text in characters.
func (wds *WordDocumentStream) GetMainTextLength() uint32 {
	return wds.FIB.FibRgLw.CcpText
}

// GetTotalTextLength returns the total length of all text (main + footnotes + headers + etc.).
func (wds *WordDocumentStream) GetTotalTextLength() uint32 {
	return wds.FIB.FibRgLw.CcpText +
		wds.FIB.FibRgLw.CcpFtn +
		wds.FIB.FibRgLw.CcpHdd +
		wds.FIB.FibRgLw.CcpAtn +
		wds.FIB.FibRgLw.CcpEdn +
		wds.FIB.FibRgLw.CcpTxbx +
		wds.FIB.FibRgLw.CcpHdrTxbx
}

// IsEncrypted returns true if the document is encrypted.
func (wds *WordDocumentStream) IsEncrypted() bool {
	return wds.FIB.IsEncrypted()
}

// IsObfuscated returns true if the document uses XOR obfuscation.
func (wds *WordDocumentStream) IsObfuscated() bool {
	return wds.FIB.IsObfuscated()
}
