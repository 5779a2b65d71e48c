package oracletest

import (
	"testing"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/types"
)

// Checker produces a verdict for one transaction view.
// *validator.Validator satisfies it.
type Checker interface {
	Check(tx timeoracle.TxView) types.Verdict
}

// Harness provides verdict assertions over a Checker.
type Harness struct {
	t testing.TB
	c Checker
}

// NewHarness creates a test harness wrapping the given checker.
func NewHarness(t testing.TB, c Checker) *Harness {
	t.Helper()
	return &Harness{t: t, c: c}
}

// Check returns the verdict for tx.
func (h *Harness) Check(tx timeoracle.TxView) types.Verdict {
	h.t.Helper()
	return h.c.Check(tx)
}

// MustAccept asserts that tx is accepted.
func (h *Harness) MustAccept(tx timeoracle.TxView) {
	h.t.Helper()
	v := h.Check(tx)
	if !v.Accepted() {
		h.t.Fatalf("expected tx accepted, got code=%d info=%q", v.Code, v.Info)
	}
}

// MustReject asserts that tx is rejected with reason.
func (h *Harness) MustReject(tx timeoracle.TxView, reason timeoracle.Reason) {
	h.t.Helper()
	v := h.Check(tx)
	if v.Accepted() {
		h.t.Fatalf("expected tx rejected with %s, got accepted", reason)
	}
	if v.Code != uint32(reason) {
		h.t.Fatalf("expected reject code=%d (%s), got code=%d info=%q", reason, reason, v.Code, v.Info)
	}
}
