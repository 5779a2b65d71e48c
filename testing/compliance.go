package oracletest

import (
	"testing"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/types"
)

// RunScenarioSuite runs the reference oracle scenarios against a
// checker configured with the default rules: a 60s minimum interval
// and an issuance bound of one million.
//
// The factory function should return a checker whose token code hash
// is tokenCodeHash.
func RunScenarioSuite(t *testing.T, tokenCodeHash types.Hash, factory func() Checker) {
	t.Helper()

	first := InputRef(0x52)
	oracleID := types.Hash{0x0D, 0x1D}
	o := NewOracle(oracleID, tokenCodeHash)
	prev := types.TimeOracle{OracleID: oracleID, LastUpdated: 1000}

	t.Run("genesis_accept", func(t *testing.T) {
		b, _ := GenesisTx(first, 3, tokenCodeHash, 0)
		NewHarness(t, factory()).MustAccept(b.View(t))
	})

	t.Run("genesis_args_mismatch", func(t *testing.T) {
		good, _ := GenesisTx(first, 3, tokenCodeHash, 0)
		id := types.Hash(good.Snapshot().Script.Args)
		id[31] ^= 0x01
		bad := NewOracle(id, tokenCodeHash)

		b := NewTx(bad.Script).Input(first, PlainCell(nil))
		for i := 0; i < 3; i++ {
			b.Output(PlainCell(nil))
		}
		b.Output(bad.Cell(types.TimeOracle{OracleID: id}))
		NewHarness(t, factory()).MustReject(b.View(t), timeoracle.ReasonOracleIDMismatch)
	})

	t.Run("update_accept", func(t *testing.T) {
		b := UpdateTx(o, prev, prev.Advance(61000), 500, 1000, 61000)
		NewHarness(t, factory()).MustAccept(b.View(t))
	})

	t.Run("update_too_soon", func(t *testing.T) {
		b := UpdateTx(o, prev, prev.Advance(1500), 500, 1000, 1500)
		NewHarness(t, factory()).MustReject(b.View(t), timeoracle.ReasonUpdateTooSoon)
	})

	t.Run("update_issuance_too_large", func(t *testing.T) {
		b := UpdateTx(o, prev, prev.Advance(61000), 500, 500+1_000_001, 61000)
		NewHarness(t, factory()).MustReject(b.View(t), timeoracle.ReasonIssuanceOutOfBounds)
	})

	t.Run("update_no_anchor", func(t *testing.T) {
		b := UpdateTx(o, prev, prev.Advance(61000), 500, 1000, 60999, 61001)
		NewHarness(t, factory()).MustReject(b.View(t), timeoracle.ReasonAnchorNotFound)
	})
}
