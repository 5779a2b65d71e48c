package local

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/identity"
	"github.com/blockberries/timeoracle/types"
)

func fixture() types.Snapshot {
	self := types.Script{CodeHash: types.Hash{0x01}, HashType: types.HashTypeType, Args: []byte{0xAA}}
	other := types.Script{CodeHash: types.Hash{0x02}, HashType: types.HashTypeData}
	return types.Snapshot{
		Script: self,
		Inputs: []types.CellInput{
			{PreviousOutput: types.OutPoint{TxHash: types.Hash{0x10}, Index: 0}},
			{PreviousOutput: types.OutPoint{TxHash: types.Hash{0x11}, Index: 1}},
		},
		ResolvedInputs: []types.Cell{
			{Type: &other, Data: []byte("a")},
			{Type: &self, Data: []byte("b")},
		},
		Outputs: []types.Cell{
			{Data: []byte("c")},
			{Type: &self, Data: []byte("d")},
			{Type: &self, Data: []byte("e")},
		},
		CellDeps:   []types.Cell{{Type: &self, Data: []byte("dep")}},
		HeaderDeps: []types.Header{{Number: 1, Timestamp: 61000}},
	}
}

func TestView_Groups(t *testing.T) {
	v, err := NewView(fixture())
	require.NoError(t, err)

	data, err := v.CellData(0, timeoracle.SourceGroupInput)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)

	data, err = v.CellData(1, timeoracle.SourceGroupOutput)
	require.NoError(t, err)
	assert.Equal(t, []byte("e"), data)

	_, err = v.CellData(1, timeoracle.SourceGroupInput)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))

	// Cell deps never join the group.
	_, err = v.CellData(2, timeoracle.SourceGroupOutput)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))
}

func TestView_CellType(t *testing.T) {
	snap := fixture()
	v, err := NewView(snap)
	require.NoError(t, err)

	typ, err := v.CellType(0, timeoracle.SourceOutput)
	require.NoError(t, err)
	assert.Nil(t, typ)

	typ, err = v.CellType(1, timeoracle.SourceOutput)
	require.NoError(t, err)
	require.NotNil(t, typ)
	assert.True(t, typ.Equal(snap.Script))

	hash, err := v.CellTypeHash(1, timeoracle.SourceOutput)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, identity.ScriptHash(identity.Blake2b{}, snap.Script), *hash)

	hash, err = v.CellTypeHash(0, timeoracle.SourceOutput)
	require.NoError(t, err)
	assert.Nil(t, hash)

	_, err = v.CellType(3, timeoracle.SourceOutput)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))
}

func TestView_InputsAndHeaders(t *testing.T) {
	snap := fixture()
	v, err := NewView(snap)
	require.NoError(t, err)

	in, err := v.Input(1)
	require.NoError(t, err)
	assert.Equal(t, snap.Inputs[1], in)

	_, err = v.Input(2)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))

	h, err := v.Header(0, timeoracle.SourceHeaderDep)
	require.NoError(t, err)
	assert.Equal(t, uint64(61000), h.Timestamp)

	_, err = v.Header(1, timeoracle.SourceHeaderDep)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))

	_, err = v.Header(0, timeoracle.SourceInput)
	assert.True(t, errors.Is(err, timeoracle.ErrItemMissing))

	_, err = v.CellData(0, timeoracle.SourceHeaderDep)
	assert.True(t, errors.Is(err, timeoracle.ErrItemMissing))
}

func TestNewView_MismatchedInputs(t *testing.T) {
	snap := fixture()
	snap.ResolvedInputs = snap.ResolvedInputs[:1]
	_, err := NewView(snap)
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	snap := fixture()
	data, err := Encode(snap)
	require.NoError(t, err)

	v, err := Decode(data)
	require.NoError(t, err)

	got := v.Snapshot()
	assert.True(t, got.Script.Equal(snap.Script))
	require.Len(t, got.Outputs, 3)

	data2, err := v.CellData(1, timeoracle.SourceGroupOutput)
	require.NoError(t, err)
	assert.Equal(t, []byte("e"), data2)
}

type fixedHasher struct{}

func (fixedHasher) Sum(...[]byte) types.Hash { return types.Hash{0x42} }

func TestWithHasher(t *testing.T) {
	v, err := NewView(fixture(), WithHasher(fixedHasher{}))
	require.NoError(t, err)
	hash, err := v.CellTypeHash(0, timeoracle.SourceGroupInput)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, types.Hash{0x42}, *hash)

	hash, err = v.CellTypeHash(1, timeoracle.SourceGroupOutput)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, types.Hash{0x42}, *hash)

	// The input group holds a single cell.
	_, err = v.CellTypeHash(1, timeoracle.SourceGroupInput)
	assert.True(t, timeoracle.IsIndexOutOfBound(err))
}
