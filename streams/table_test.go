package streams

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPieceTableSkipsPrc(t *testing.T) {
	// One PCD: cp [0,1), fc 0, 8-bit compressed, no flags, no Prm.
	pcd := make([]byte, 8)
	binary.LittleEndian.PutUint32(pcd[2:6], 0x40000000) // compressed bit set, fc 0

	plcPcd := make([]byte, 0)
	plcPcd = binary.LittleEndian.AppendUint32(plcPcd, 0)
	plcPcd = binary.LittleEndian.AppendUint32(plcPcd, 1)
	plcPcd = append(plcPcd, pcd...)

	// A Prc (tag 0x01, cbGrpprl 3, three grpprl bytes) ahead of the PlcPcd.
	clx := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x00, 0x02}
	clx = binary.LittleEndian.AppendUint32(clx, uint32(len(plcPcd)))
	clx = append(clx, plcPcd...)

	data := make([]byte, 100)
	copy(data[10:], clx)

	ts := NewTableStream(data, "0Table")
	pieces, err := ts.GetPieceTable(10, uint32(len(clx)))
	require.NoError(t, err)
	require.Len(t, pieces.Pieces, 1)
	assert.False(t, pieces.Pieces[0].IsUnicode)
}

func TestGetPieceTableNoData(t *testing.T) {
	ts := NewTableStream(make([]byte, 10), "0Table")
	_, err := ts.GetPieceTable(0, 0)
	assert.Error(t, err)
}

func TestGetStyleSheetOutOfBounds(t *testing.T) {
	ts := NewTableStream(make([]byte, 10), "0Table")
	_, err := ts.GetStyleSheet(5, 100)
	assert.Error(t, err)
}

func TestGetStyleSheetEmpty(t *testing.T) {
	ts := NewTableStream(make([]byte, 10), "0Table")
	out, err := ts.GetStyleSheet(0, 0)
	require.NoError(t, err)
	assert.Nil(t, out)
}
