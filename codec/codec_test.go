package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeANSIPlainASCII(t *testing.T) {
	out, err := DecodeANSI([]byte("Hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestDecodeANSISpecialChars(t *testing.T) {
	// 0x93/0x94 are the Windows-1252 curly double quotes MS-DOC's own
	// special-char table assigns to the same byte values.
	out, err := DecodeANSI([]byte{0x93, 'x', 0x94})
	require.NoError(t, err)
	assert.Equal(t, "“x”", out)
}

func TestDecodeUTF16LE(t *testing.T) {
	// "Hi" as UTF-16LE.
	out, err := DecodeUTF16LE([]byte{'H', 0, 'i', 0})
	require.NoError(t, err)
	assert.Equal(t, "Hi", out)
}

func TestDecodeUTF16LEDropsNoBreakMark(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'A', 0} // U+FEFF then 'A'
	out, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	assert.Equal(t, "A", out)
}

func TestDecodeUTF16LEOddLength(t *testing.T) {
	_, err := DecodeUTF16LE([]byte{0x01})
	assert.Error(t, err)
}

func TestIsMark(t *testing.T) {
	assert.True(t, IsMark(0x0D))
	assert.True(t, IsMark(0x07))
	assert.False(t, IsMark('\t'))
	assert.False(t, IsMark('A'))
}
