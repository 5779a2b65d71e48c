// Package types defines the data model of the time oracle: script
// identities, cell references, headers, and the persisted record
// layouts.
//
// Snapshot and Verdict carry cramberry struct tags for deterministic
// transport between a host and the validator. The persisted ledger
// formats (Script, CellInput, TimeOracle, TokenAmount) are fixed-width
// little-endian layouts encoded by hand, because every reader of
// oracle state must decode them byte for byte.
package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Hash is a 32-byte cryptographic hash.
type Hash [32]byte

// IsZero reports whether h is all zeroes.
func (h Hash) IsZero() bool { return h == Hash{} }

func (h Hash) String() string { return fmt.Sprintf("0x%x", h[:]) }

// HashType selects how a script's code hash is matched against code.
type HashType uint8

const (
	HashTypeData  HashType = 0
	HashTypeType  HashType = 1
	HashTypeData1 HashType = 2
	HashTypeData2 HashType = 4
)

func (t HashType) String() string {
	switch t {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	case HashTypeData2:
		return "data2"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Script identifies a contract or type by content.
type Script struct {
	CodeHash Hash     `cramberry:"1"`
	HashType HashType `cramberry:"2"`
	Args     []byte   `cramberry:"3"`
}

// Decoding errors for the persisted layouts.
var (
	ErrTruncated     = errors.New("types: data too short")
	ErrInvalidLayout = errors.New("types: inconsistent layout")
)

const (
	scriptFields     = 3
	scriptHeaderSize = 4 * (1 + scriptFields)
)

// Serialize returns the canonical table encoding of s:
//
//	total_size u32 | offsets [3]u32 | code_hash [32] | hash_type u8 | args_len u32 | args
//
// All integers are little-endian.
func (s Script) Serialize() []byte {
	codeOff := scriptHeaderSize
	typeOff := codeOff + len(s.CodeHash)
	argsOff := typeOff + 1
	total := argsOff + 4 + len(s.Args)

	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:], uint32(total))
	binary.LittleEndian.PutUint32(buf[4:], uint32(codeOff))
	binary.LittleEndian.PutUint32(buf[8:], uint32(typeOff))
	binary.LittleEndian.PutUint32(buf[12:], uint32(argsOff))
	copy(buf[codeOff:], s.CodeHash[:])
	buf[typeOff] = byte(s.HashType)
	binary.LittleEndian.PutUint32(buf[argsOff:], uint32(len(s.Args)))
	copy(buf[argsOff+4:], s.Args)
	return buf
}

// Equal reports whether s and o serialize to the same bytes.
func (s Script) Equal(o Script) bool {
	return bytes.Equal(s.Serialize(), o.Serialize())
}

// DecodeScript parses the table encoding produced by Serialize.
// Fields appended after args by newer writers are ignored.
func DecodeScript(data []byte) (Script, error) {
	if len(data) < scriptHeaderSize {
		return Script{}, fmt.Errorf("script header: %w", ErrTruncated)
	}
	total := int(binary.LittleEndian.Uint32(data[0:]))
	if total != len(data) {
		return Script{}, fmt.Errorf("script size %d, have %d bytes: %w", total, len(data), ErrInvalidLayout)
	}
	first := int(binary.LittleEndian.Uint32(data[4:]))
	if first%4 != 0 || first < scriptHeaderSize || first > total {
		return Script{}, fmt.Errorf("script first offset %d: %w", first, ErrInvalidLayout)
	}
	fields := first/4 - 1
	if fields < scriptFields {
		return Script{}, fmt.Errorf("script has %d fields: %w", fields, ErrInvalidLayout)
	}
	offsets := make([]int, fields+1)
	for i := 0; i < fields; i++ {
		offsets[i] = int(binary.LittleEndian.Uint32(data[4+4*i:]))
	}
	offsets[fields] = total
	for i := 0; i < fields; i++ {
		if offsets[i] > offsets[i+1] {
			return Script{}, fmt.Errorf("script offsets not ascending: %w", ErrInvalidLayout)
		}
	}

	code := data[offsets[0]:offsets[1]]
	kind := data[offsets[1]:offsets[2]]
	args := data[offsets[2]:offsets[3]]
	if len(code) != len(Hash{}) || len(kind) != 1 {
		return Script{}, fmt.Errorf("script fixed fields: %w", ErrInvalidLayout)
	}
	if len(args) < 4 {
		return Script{}, fmt.Errorf("script args header: %w", ErrTruncated)
	}
	n := int(binary.LittleEndian.Uint32(args))
	if n != len(args)-4 {
		return Script{}, fmt.Errorf("script args length %d, have %d: %w", n, len(args)-4, ErrInvalidLayout)
	}

	var s Script
	copy(s.CodeHash[:], code)
	s.HashType = HashType(kind[0])
	s.Args = append([]byte(nil), args[4:]...)
	return s, nil
}
