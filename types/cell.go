package types

import (
	"encoding/binary"
	"fmt"
	"time"
)

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	TxHash Hash   `cramberry:"1"`
	Index  uint32 `cramberry:"2"`
}

// CellInput is a transaction input reference: the out point being
// spent plus its since constraint. It is not the resolved cell.
type CellInput struct {
	Since          uint64   `cramberry:"1"`
	PreviousOutput OutPoint `cramberry:"2"`
}

// CellInputSize is the length of a serialized CellInput.
const CellInputSize = 8 + 32 + 4

// Serialize returns the fixed layout since u64 | tx_hash [32] | index u32,
// integers little-endian.
func (in CellInput) Serialize() []byte {
	buf := make([]byte, CellInputSize)
	binary.LittleEndian.PutUint64(buf[0:], in.Since)
	copy(buf[8:], in.PreviousOutput.TxHash[:])
	binary.LittleEndian.PutUint32(buf[40:], in.PreviousOutput.Index)
	return buf
}

// DecodeCellInput parses the fixed layout produced by Serialize.
func DecodeCellInput(data []byte) (CellInput, error) {
	if len(data) != CellInputSize {
		return CellInput{}, fmt.Errorf("cell input is %d bytes, want %d: %w", len(data), CellInputSize, ErrTruncated)
	}
	var in CellInput
	in.Since = binary.LittleEndian.Uint64(data[0:])
	copy(in.PreviousOutput.TxHash[:], data[8:40])
	in.PreviousOutput.Index = binary.LittleEndian.Uint32(data[40:])
	return in, nil
}

// Cell is a live cell as seen by the validator: its optional type
// script and its data payload. Lock scripts and capacity play no part
// in oracle validation and are not modelled.
type Cell struct {
	Type *Script `cramberry:"1"`
	Data []byte  `cramberry:"2"`
}

// Header is a block header pulled in as a transaction dependency.
// Only Timestamp participates in validation.
type Header struct {
	Number    uint64 `cramberry:"1"`
	Hash      Hash   `cramberry:"2"`
	Timestamp uint64 `cramberry:"3"` // milliseconds since Unix epoch
}

// Time converts the header timestamp to a time.Time (UTC).
func (h Header) Time() time.Time { return unixMilli(h.Timestamp) }
