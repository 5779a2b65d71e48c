// Package identity derives the hashes that bind an oracle to the
// ledger: script hashes, the oracle's unique id, and the type script
// of the token the oracle mints.
package identity

import (
	"encoding/binary"

	"github.com/minio/blake2b-simd"

	"github.com/blockberries/timeoracle/types"
)

// Personalization is the BLAKE2b personalization string of the
// ledger's default hash.
const Personalization = "ckb-default-hash"

// Hasher is a 32-byte personalized hash over the concatenation of parts.
type Hasher interface {
	Sum(parts ...[]byte) types.Hash
}

// Blake2b is the ledger's default hash: BLAKE2b-256 personalized with
// Personalization.
type Blake2b struct{}

func (Blake2b) Sum(parts ...[]byte) types.Hash {
	h, err := blake2b.New(&blake2b.Config{
		Size:   32,
		Person: []byte(Personalization),
	})
	if err != nil {
		// Only reachable with an invalid static config.
		panic("github.com/blockberries/timeoracle/identity: " + err.Error())
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ScriptHash returns the hash of a script's serialized form.
func ScriptHash(h Hasher, s types.Script) types.Hash {
	return h.Sum(s.Serialize())
}

// DeriveOracleID computes the unique id of an oracle created at
// outputIndex by a transaction whose first input is firstInput:
//
//	hash(serialize(firstInput) || le64(outputIndex))
//
// A first input can only be spent once, so no two initializing
// transactions produce the same id.
func DeriveOracleID(h Hasher, firstInput types.CellInput, outputIndex uint64) types.Hash {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], outputIndex)
	return h.Sum(firstInput.Serialize(), idx[:])
}

// TokenScript returns the type script of the token owned by the oracle
// whose script hash is oracleHash. Each oracle gets its own token.
func TokenScript(codeHash types.Hash, hashType types.HashType, oracleHash types.Hash) types.Script {
	return types.Script{
		CodeHash: codeHash,
		HashType: hashType,
		Args:     append([]byte(nil), oracleHash[:]...),
	}
}

// TokenTypeHash returns the type hash of the token owned by the oracle
// script self.
func TokenTypeHash(h Hasher, codeHash types.Hash, hashType types.HashType, self types.Script) types.Hash {
	return ScriptHash(h, TokenScript(codeHash, hashType, ScriptHash(h, self)))
}
