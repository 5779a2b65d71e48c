// Package timeoracle defines the transaction-scoped query interface
// the time oracle validator consumes from its execution host, together
// with the reject reasons that form its only externally visible output.
//
// The host is an external collaborator. It exposes one immutable
// transaction through [TxView]; the validator in package validator
// evaluates that view once and returns a verdict.
package timeoracle

import (
	"fmt"

	"github.com/blockberries/timeoracle/types"
)

// Source selects which side of the transaction an index refers to.
type Source uint8

const (
	// SourceInput is the transaction's resolved input cells.
	SourceInput Source = 1
	// SourceOutput is the transaction's output cells.
	SourceOutput Source = 2
	// SourceCellDep is the transaction's dependency cells.
	SourceCellDep Source = 3
	// SourceHeaderDep is the transaction's dependency block headers.
	SourceHeaderDep Source = 4
	// SourceGroupInput is the inputs whose type script equals the
	// executing script.
	SourceGroupInput Source = 0x81
	// SourceGroupOutput is the outputs whose type script equals the
	// executing script.
	SourceGroupOutput Source = 0x82
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "Input"
	case SourceOutput:
		return "Output"
	case SourceCellDep:
		return "CellDep"
	case SourceHeaderDep:
		return "HeaderDep"
	case SourceGroupInput:
		return "GroupInput"
	case SourceGroupOutput:
		return "GroupOutput"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// IsGroup reports whether s is restricted to the executing script's group.
func (s Source) IsGroup() bool { return s&0x80 != 0 }

// TxView is the read-only transaction snapshot supplied by the host.
//
// Every indexed accessor returns ErrIndexOutOfBound (possibly wrapped)
// once index reaches the end of the selected side. Implementations
// must be deterministic: the same view always answers the same way.
type TxView interface {
	// Script returns the identity of the executing script.
	Script() (types.Script, error)

	// CellType returns the type script of a cell, or nil if the cell
	// has none.
	CellType(index int, src Source) (*types.Script, error)

	// CellTypeHash returns the hash of a cell's type script, or nil if
	// the cell has none.
	CellTypeHash(index int, src Source) (*types.Hash, error)

	// CellData returns a cell's data payload.
	CellData(index int, src Source) ([]byte, error)

	// Input returns the reference of the transaction input at index.
	// This is the out point plus since, not the resolved cell.
	Input(index int) (types.CellInput, error)

	// Header returns a header. Only SourceHeaderDep is meaningful for
	// this validator.
	Header(index int, src Source) (types.Header, error)
}
