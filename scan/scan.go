// Package scan walks the sides of a transaction view. Every walk is
// linear and stops at the first index the host reports out of bound,
// so its cost is bounded by the transaction itself.
package scan

import (
	"github.com/holiman/uint256"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/types"
)

// FindPositionByIdentity returns the index of the first cell on src
// whose type script serializes identically to script. Typeless cells
// never match.
func FindPositionByIdentity(tx timeoracle.TxView, script types.Script, src timeoracle.Source) (int, bool, error) {
	for i := 0; ; i++ {
		typ, err := tx.CellType(i, src)
		if timeoracle.IsIndexOutOfBound(err) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, timeoracle.FromHostError(err)
		}
		if typ != nil && typ.Equal(script) {
			return i, true, nil
		}
	}
}

// GroupTypes loads the type script of every cell on a group side.
func GroupTypes(tx timeoracle.TxView, src timeoracle.Source) ([]types.Script, error) {
	var out []types.Script
	for i := 0; ; i++ {
		typ, err := tx.CellType(i, src)
		if timeoracle.IsIndexOutOfBound(err) {
			return out, nil
		}
		if err != nil {
			return nil, timeoracle.FromHostError(err)
		}
		if typ == nil {
			// Group cells are selected by type, so a host that
			// returns a typeless one is broken.
			return nil, timeoracle.Reject(timeoracle.ReasonItemMissing, "%s[%d] has no type script", src, i)
		}
		out = append(out, *typ)
	}
}

// SumTokenAmount adds up the token amounts of every cell on src whose
// type hash equals tokenTypeHash. A matching cell whose data does not
// hold an amount rejects with ReasonMalformedData.
func SumTokenAmount(tx timeoracle.TxView, src timeoracle.Source, tokenTypeHash types.Hash) (*uint256.Int, error) {
	sum := new(uint256.Int)
	for i := 0; ; i++ {
		hash, err := tx.CellTypeHash(i, src)
		if timeoracle.IsIndexOutOfBound(err) {
			return sum, nil
		}
		if err != nil {
			return nil, timeoracle.FromHostError(err)
		}
		if hash == nil || *hash != tokenTypeHash {
			continue
		}

		data, err := tx.CellData(i, src)
		if err != nil {
			return nil, timeoracle.FromHostError(err)
		}
		amount, err := types.DecodeTokenAmount(data)
		if err != nil {
			return nil, timeoracle.Reject(timeoracle.ReasonMalformedData, "%s[%d]: %v", src, i, err)
		}
		// Each amount is below 2^128, so the 256-bit sum cannot
		// overflow for any transaction a host can represent.
		sum.Add(sum, amount.Amount)
	}
}

// HeaderDepHasTimestamp reports whether some header dependency carries
// exactly ts.
func HeaderDepHasTimestamp(tx timeoracle.TxView, ts uint64) (bool, error) {
	for i := 0; ; i++ {
		h, err := tx.Header(i, timeoracle.SourceHeaderDep)
		if timeoracle.IsIndexOutOfBound(err) {
			return false, nil
		}
		if err != nil {
			return false, timeoracle.FromHostError(err)
		}
		if h.Timestamp == ts {
			return true, nil
		}
	}
}
