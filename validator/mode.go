package validator

import (
	"fmt"

	"github.com/blockberries/timeoracle"
)

// Mode is the kind of transition a transaction performs on the oracle.
type Mode uint8

const (
	// ModeInvalid: the group shape admits no legal transition.
	ModeInvalid Mode = iota
	// ModeInitializing: no oracle cell is consumed, one is created.
	ModeInitializing
	// ModeUpdating: one oracle cell is consumed and one is created.
	ModeUpdating
)

func (m Mode) String() string {
	switch m {
	case ModeInvalid:
		return "Invalid"
	case ModeInitializing:
		return "Initializing"
	case ModeUpdating:
		return "Updating"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// Classify decides the mode from the number of oracle cells in the
// group inputs and group outputs. An Invalid mode always comes with a
// RejectError.
func Classify(groupInputs, groupOutputs int) (Mode, error) {
	// The output count is checked before the input count, so a
	// transaction wrong on both sides reports UnexpectedOutputCells
	// rather than Unreachable.
	if groupOutputs != 1 {
		return ModeInvalid, timeoracle.Reject(timeoracle.ReasonUnexpectedOutputCells,
			"%d oracle cells in outputs, want 1", groupOutputs)
	}
	switch groupInputs {
	case 0:
		return ModeInitializing, nil
	case 1:
		return ModeUpdating, nil
	default:
		return ModeInvalid, timeoracle.Reject(timeoracle.ReasonUnreachable,
			"%d oracle cells in inputs", groupInputs)
	}
}
