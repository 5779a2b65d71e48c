package timeoracle

import (
	"errors"
	"fmt"
)

// Reason identifies the rule a rejected transaction violated. The
// numeric values are the validator's exit codes and must never change.
type Reason int8

const (
	// Structural reasons, surfaced from the host's query interface.
	ReasonIndexOutOfBound Reason = 1
	ReasonItemMissing     Reason = 2
	ReasonLengthNotEnough Reason = 3
	ReasonEncoding        Reason = 4

	// Semantic reasons, raised by the transition rules.
	ReasonUnexpectedOutputCells Reason = 100
	ReasonOracleIDMismatch      Reason = 101
	ReasonAnchorNotFound        Reason = 102
	ReasonUpdateTooSoon         Reason = 103
	ReasonIssuanceOutOfBounds   Reason = 104
	ReasonMalformedData         Reason = 105
	ReasonUnreachable           Reason = 106
)

func (r Reason) String() string {
	switch r {
	case ReasonIndexOutOfBound:
		return "IndexOutOfBound"
	case ReasonItemMissing:
		return "ItemMissing"
	case ReasonLengthNotEnough:
		return "LengthNotEnough"
	case ReasonEncoding:
		return "Encoding"
	case ReasonUnexpectedOutputCells:
		return "UnexpectedOutputCells"
	case ReasonOracleIDMismatch:
		return "OracleIDMismatch"
	case ReasonAnchorNotFound:
		return "AnchorNotFound"
	case ReasonUpdateTooSoon:
		return "UpdateTooSoon"
	case ReasonIssuanceOutOfBounds:
		return "IssuanceOutOfBounds"
	case ReasonMalformedData:
		return "MalformedData"
	case ReasonUnreachable:
		return "Unreachable"
	default:
		return fmt.Sprintf("unknown(%d)", int8(r))
	}
}

// Structural reports whether r originates from host access rather than
// from a transition rule.
func (r Reason) Structural() bool { return r >= ReasonIndexOutOfBound && r <= ReasonEncoding }

// SysError is a structural failure reported by the host when a cell or
// header cannot be loaded.
type SysError struct {
	Code Reason
}

func (e *SysError) Error() string {
	return fmt.Sprintf("sys: %s", e.Code)
}

// Host sentinel errors. Hosts return these, optionally wrapped.
var (
	ErrIndexOutOfBound = &SysError{Code: ReasonIndexOutOfBound}
	ErrItemMissing     = &SysError{Code: ReasonItemMissing}
	ErrLengthNotEnough = &SysError{Code: ReasonLengthNotEnough}
	ErrEncoding        = &SysError{Code: ReasonEncoding}
)

// RejectError is returned by the validator when a transaction violates
// a rule. Reason is the stable diagnostic; Detail is informational only.
type RejectError struct {
	Reason Reason
	Detail string
}

func (e *RejectError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rejected (%d %s)", e.Reason, e.Reason)
	}
	return fmt.Sprintf("rejected (%d %s): %s", e.Reason, e.Reason, e.Detail)
}

// Reject creates a RejectError with a formatted detail.
func Reject(reason Reason, format string, args ...any) *RejectError {
	return &RejectError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsReject checks whether an error is a RejectError and returns it.
func IsReject(err error) (*RejectError, bool) {
	var r *RejectError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// ReasonOf returns the reason carried by err, or 0 if err is nil or
// carries none.
func ReasonOf(err error) Reason {
	if r, ok := IsReject(err); ok {
		return r.Reason
	}
	var s *SysError
	if errors.As(err, &s) {
		return s.Code
	}
	return 0
}

// FromHostError converts a host access error into a RejectError
// carrying the same structural reason. A nil error stays nil.
//
// Panics on an error the host contract does not define: that is a
// defect in the host or the caller, not a rejectable transaction.
func FromHostError(err error) error {
	if err == nil {
		return nil
	}
	if r, ok := IsReject(err); ok {
		return r
	}
	var s *SysError
	if errors.As(err, &s) && s.Code.Structural() {
		return &RejectError{Reason: s.Code, Detail: err.Error()}
	}
	panic(fmt.Sprintf("github.com/blockberries/timeoracle: unexpected host error: %v", err))
}

// IsIndexOutOfBound reports whether err marks the end of a side.
func IsIndexOutOfBound(err error) bool {
	return ReasonOf(err) == ReasonIndexOutOfBound
}
