// Package oracletest provides test utilities for the time oracle:
// builders for synthetic transactions, a verdict harness, a
// configurable mock view, and a scenario suite any checker must pass.
package oracletest

import (
	"sync/atomic"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/types"
)

// Compile-time interface check.
var _ timeoracle.TxView = (*MockView)(nil)

// MockView is a configurable timeoracle.TxView. Each method delegates
// to Base unless its function field is set; with neither, it reports
// ErrIndexOutOfBound so every side appears empty.
//
// Use it to inject host failures into an otherwise valid view.
type MockView struct {
	Base timeoracle.TxView

	ScriptFn       func() (types.Script, error)
	CellTypeFn     func(int, timeoracle.Source) (*types.Script, error)
	CellTypeHashFn func(int, timeoracle.Source) (*types.Hash, error)
	CellDataFn     func(int, timeoracle.Source) ([]byte, error)
	InputFn        func(int) (types.CellInput, error)
	HeaderFn       func(int, timeoracle.Source) (types.Header, error)

	// Call counters.
	CellTypeCalls atomic.Int64
	HeaderCalls   atomic.Int64
}

func (m *MockView) Script() (types.Script, error) {
	if m.ScriptFn != nil {
		return m.ScriptFn()
	}
	if m.Base != nil {
		return m.Base.Script()
	}
	return types.Script{}, nil
}

func (m *MockView) CellType(index int, src timeoracle.Source) (*types.Script, error) {
	m.CellTypeCalls.Add(1)
	if m.CellTypeFn != nil {
		return m.CellTypeFn(index, src)
	}
	if m.Base != nil {
		return m.Base.CellType(index, src)
	}
	return nil, timeoracle.ErrIndexOutOfBound
}

func (m *MockView) CellTypeHash(index int, src timeoracle.Source) (*types.Hash, error) {
	if m.CellTypeHashFn != nil {
		return m.CellTypeHashFn(index, src)
	}
	if m.Base != nil {
		return m.Base.CellTypeHash(index, src)
	}
	return nil, timeoracle.ErrIndexOutOfBound
}

func (m *MockView) CellData(index int, src timeoracle.Source) ([]byte, error) {
	if m.CellDataFn != nil {
		return m.CellDataFn(index, src)
	}
	if m.Base != nil {
		return m.Base.CellData(index, src)
	}
	return nil, timeoracle.ErrIndexOutOfBound
}

func (m *MockView) Input(index int) (types.CellInput, error) {
	if m.InputFn != nil {
		return m.InputFn(index)
	}
	if m.Base != nil {
		return m.Base.Input(index)
	}
	return types.CellInput{}, timeoracle.ErrIndexOutOfBound
}

func (m *MockView) Header(index int, src timeoracle.Source) (types.Header, error) {
	m.HeaderCalls.Add(1)
	if m.HeaderFn != nil {
		return m.HeaderFn(index, src)
	}
	if m.Base != nil {
		return m.Base.Header(index, src)
	}
	return types.Header{}, timeoracle.ErrIndexOutOfBound
}
