package validator_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/blockberries/timeoracle"
	oracletest "github.com/blockberries/timeoracle/testing"
	"github.com/blockberries/timeoracle/types"
	"github.com/blockberries/timeoracle/validator"
)

func properties(n int) *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = n
	return gopter.NewProperties(parameters)
}

// Property: an update is accepted only if the new timestamp is at least
// one interval ahead of the old one.
func TestPropertyMonotonicTime(t *testing.T) {
	v := newValidator(t)
	o := testOracle()
	props := properties(200)

	props.Property("accepted updates advance by at least 60s", prop.ForAll(
		func(last, gap uint64) bool {
			prev := types.TimeOracle{OracleID: oracleID, LastUpdated: last}
			post := prev.Advance(last + gap)
			view := oracletest.UpdateTx(o, prev, post, 0, 1, post.LastUpdated).View(t)

			err := v.Verify(view)
			if gap >= 60_000 {
				return err == nil
			}
			return timeoracle.ReasonOf(err) == timeoracle.ReasonUpdateTooSoon
		},
		gen.UInt64Range(0, 1<<42),
		gen.UInt64Range(0, 180_000),
	))

	props.Property("earlier timestamps never pass", prop.ForAll(
		func(last, back uint64) bool {
			prev := types.TimeOracle{OracleID: oracleID, LastUpdated: last}
			post := prev.Advance(last - back)
			view := oracletest.UpdateTx(o, prev, post, 0, 1, post.LastUpdated).View(t)
			return timeoracle.ReasonOf(v.Verify(view)) == timeoracle.ReasonUpdateTooSoon
		},
		gen.UInt64Range(1<<20, 1<<42),
		gen.UInt64Range(0, 1<<20),
	))

	props.TestingRun(t)
}

// Property: an update is accepted only if some header dep carries its
// exact timestamp.
func TestPropertyAnchoring(t *testing.T) {
	v := newValidator(t)
	o := testOracle()
	prev := types.TimeOracle{OracleID: oracleID, LastUpdated: 1000}
	post := prev.Advance(61000)
	props := properties(200)

	props.Property("accepted iff anchored", prop.ForAll(
		func(anchors []uint64) bool {
			anchored := false
			for _, ts := range anchors {
				if ts == post.LastUpdated {
					anchored = true
				}
			}
			view := oracletest.UpdateTx(o, prev, post, 0, 1, anchors...).View(t)
			err := v.Verify(view)
			if anchored {
				return err == nil
			}
			return timeoracle.ReasonOf(err) == timeoracle.ReasonAnchorNotFound
		},
		gen.SliceOf(gen.UInt64Range(60_990, 61_010)),
	))

	props.TestingRun(t)
}

// Property: 0 < minted < 1_000_000 for every accepted update.
func TestPropertyBoundedIssuance(t *testing.T) {
	v := newValidator(t)
	o := testOracle()
	prev := types.TimeOracle{OracleID: oracleID, LastUpdated: 1000}
	post := prev.Advance(61000)
	props := properties(300)

	props.Property("issuance stays within bounds", prop.ForAll(
		func(in, out uint64) bool {
			view := oracletest.UpdateTx(o, prev, post, in, out, 61000).View(t)
			err := v.Verify(view)
			if out > in && out-in < 1_000_000 {
				return err == nil
			}
			return timeoracle.ReasonOf(err) == timeoracle.ReasonIssuanceOutOfBounds
		},
		gen.UInt64Range(0, 3_000_000),
		gen.UInt64Range(0, 3_000_000),
	))

	props.TestingRun(t)
}

// Property: a genesis is accepted only if the args commit to the id
// derived from the first input and the oracle's output index.
func TestPropertyGenesisIdentity(t *testing.T) {
	v := newValidator(t)
	props := properties(100)

	props.Property("derived id is required", prop.ForAll(
		func(seed uint8, index int, flip int) bool {
			first := oracletest.InputRef(seed)
			good, _ := oracletest.GenesisTx(first, index, validator.DefaultTokenCodeHash, 0)
			if v.Verify(good.View(t)) != nil {
				return false
			}

			id := types.Hash(good.Snapshot().Script.Args)
			id[flip] ^= 0x80
			bad := oracletest.NewOracle(id, validator.DefaultTokenCodeHash)
			b := oracletest.NewTx(bad.Script).Input(first, oracletest.PlainCell(nil))
			for i := 0; i < index; i++ {
				b.Output(oracletest.PlainCell(nil))
			}
			b.Output(bad.Cell(types.TimeOracle{OracleID: id}))
			return timeoracle.ReasonOf(v.Verify(b.View(t))) == timeoracle.ReasonOracleIDMismatch
		},
		gen.UInt8(),
		gen.IntRange(0, 8),
		gen.IntRange(0, 31),
	))

	props.TestingRun(t)
}

// Property: every accepted transaction has at most one group input and
// exactly one group output.
func TestPropertyUniqueness(t *testing.T) {
	v := newValidator(t)
	o := testOracle()
	prev := types.TimeOracle{OracleID: oracleID, LastUpdated: 1000}
	post := prev.Advance(61000)
	props := properties(100)

	props.Property("group shape", prop.ForAll(
		func(extraIn, extraOut int) bool {
			b := oracletest.UpdateTx(o, prev, post, 0, 1, 61000)
			for i := 0; i < extraIn; i++ {
				b.Input(oracletest.InputRef(byte(10+i)), o.Cell(prev))
			}
			for i := 0; i < extraOut; i++ {
				b.Output(o.Cell(post))
			}
			err := v.Verify(b.View(t))
			return (err == nil) == (extraIn == 0 && extraOut == 0)
		},
		gen.IntRange(0, 3),
		gen.IntRange(0, 3),
	))

	props.TestingRun(t)
}
