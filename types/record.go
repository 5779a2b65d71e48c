package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/holiman/uint256"
)

// TimeOracleSize is the length of a serialized TimeOracle record.
const TimeOracleSize = 32 + 8

// TimeOracle is the oracle cell's data payload. OracleID is fixed at
// creation; LastUpdated only moves forward.
type TimeOracle struct {
	OracleID    Hash
	LastUpdated uint64 // milliseconds since Unix epoch
}

// Serialize returns oracle_id [32] | last_updated u64 LE.
func (r TimeOracle) Serialize() []byte {
	buf := make([]byte, TimeOracleSize)
	copy(buf, r.OracleID[:])
	binary.LittleEndian.PutUint64(buf[32:], r.LastUpdated)
	return buf
}

// DecodeTimeOracle parses a record. Bytes past TimeOracleSize are
// ignored.
func DecodeTimeOracle(data []byte) (TimeOracle, error) {
	if len(data) < TimeOracleSize {
		return TimeOracle{}, fmt.Errorf("time oracle is %d bytes, want %d: %w", len(data), TimeOracleSize, ErrTruncated)
	}
	var r TimeOracle
	copy(r.OracleID[:], data[:32])
	r.LastUpdated = binary.LittleEndian.Uint64(data[32:])
	return r, nil
}

// Advance returns the successor record stamped at ts. The identity is
// carried over unchanged.
func (r TimeOracle) Advance(ts uint64) TimeOracle {
	return TimeOracle{OracleID: r.OracleID, LastUpdated: ts}
}

// Time converts LastUpdated to a time.Time (UTC).
func (r TimeOracle) Time() time.Time { return unixMilli(r.LastUpdated) }

// unixMilli converts a ledger timestamp for display. Values past
// math.MaxInt64 clamp instead of wrapping before the epoch.
func unixMilli(ms uint64) time.Time {
	if ms > math.MaxInt64 {
		ms = math.MaxInt64
	}
	return time.UnixMilli(int64(ms)).UTC()
}

// TokenAmountSize is the length of a serialized token amount.
const TokenAmountSize = 16

// TokenAmount is the u128 balance stored at the head of a token cell's
// data, little-endian.
type TokenAmount struct {
	Amount *uint256.Int
}

// NewTokenAmount wraps a uint64 amount.
func NewTokenAmount(n uint64) TokenAmount {
	return TokenAmount{Amount: uint256.NewInt(n)}
}

// DecodeTokenAmount reads the first 16 bytes of data as a little-endian
// u128. Trailing bytes belong to the token's extension data and are
// ignored.
func DecodeTokenAmount(data []byte) (TokenAmount, error) {
	if len(data) < TokenAmountSize {
		return TokenAmount{}, fmt.Errorf("token amount is %d bytes, want %d: %w", len(data), TokenAmountSize, ErrTruncated)
	}
	var be [TokenAmountSize]byte
	for i := 0; i < TokenAmountSize; i++ {
		be[TokenAmountSize-1-i] = data[i]
	}
	return TokenAmount{Amount: new(uint256.Int).SetBytes16(be[:])}, nil
}

// Serialize returns the 16-byte little-endian encoding. Amounts wider
// than 128 bits are an error.
func (a TokenAmount) Serialize() ([]byte, error) {
	v := a.Amount
	if v == nil {
		v = new(uint256.Int)
	}
	if v.BitLen() > 8*TokenAmountSize {
		return nil, fmt.Errorf("token amount %s exceeds 128 bits", v.Dec())
	}
	be := v.Bytes32()
	buf := make([]byte, TokenAmountSize)
	for i := 0; i < TokenAmountSize; i++ {
		buf[i] = be[31-i]
	}
	return buf, nil
}
