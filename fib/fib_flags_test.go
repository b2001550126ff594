package fib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEncrypted(t *testing.T) {
	f := &FileInformationBlock{Base: FibBase{Flags1: flagEncrypted}}
	assert.True(t, f.IsEncrypted())

	f2 := &FileInformationBlock{Base: FibBase{Flags1: flagWhichTblStm}}
	assert.False(t, f2.IsEncrypted())
}

func TestGetTableStreamName(t *testing.T) {
	unset := &FileInformationBlock{Base: FibBase{Flags1: 0}}
	assert.Equal(t, "0Table", unset.GetTableStreamName())

	set := &FileInformationBlock{Base: FibBase{Flags1: flagWhichTblStm}}
	assert.Equal(t, "1Table", set.GetTableStreamName())
}
