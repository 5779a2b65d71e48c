package oracletest

import (
	"testing"

	"github.com/blockberries/timeoracle/identity"
	"github.com/blockberries/timeoracle/local"
	"github.com/blockberries/timeoracle/types"
)

// OracleCodeHash is the code hash used for synthetic oracle scripts.
var OracleCodeHash = types.Hash{0x7E, 0x57, 0x0A, 0xC1}

// Oracle describes one oracle instance: its type script and the token
// it mints.
type Oracle struct {
	Script        types.Script
	TokenCodeHash types.Hash
	TokenHashType types.HashType
	Hasher        identity.Hasher
}

// NewOracle returns an oracle whose script args are id.
func NewOracle(id types.Hash, tokenCodeHash types.Hash) Oracle {
	return Oracle{
		Script: types.Script{
			CodeHash: OracleCodeHash,
			HashType: types.HashTypeType,
			Args:     append([]byte(nil), id[:]...),
		},
		TokenCodeHash: tokenCodeHash,
		TokenHashType: types.HashTypeType,
		Hasher:        identity.Blake2b{},
	}
}

// TokenScript returns the type script of the oracle's token.
func (o Oracle) TokenScript() types.Script {
	return identity.TokenScript(o.TokenCodeHash, o.TokenHashType, identity.ScriptHash(o.Hasher, o.Script))
}

// Cell returns an oracle cell holding r.
func (o Oracle) Cell(r types.TimeOracle) types.Cell {
	s := o.Script
	return types.Cell{Type: &s, Data: r.Serialize()}
}

// TokenCell returns a cell holding amount of the oracle's token.
func (o Oracle) TokenCell(amount uint64) types.Cell {
	data, err := types.NewTokenAmount(amount).Serialize()
	if err != nil {
		panic(err) // a uint64 always fits in 128 bits
	}
	s := o.TokenScript()
	return types.Cell{Type: &s, Data: data}
}

// PlainCell returns a typeless cell with the given data.
func PlainCell(data []byte) types.Cell {
	return types.Cell{Data: data}
}

// InputRef returns a distinct input reference for seed.
func InputRef(seed byte) types.CellInput {
	return types.CellInput{PreviousOutput: types.OutPoint{TxHash: types.Hash{seed, 0xF1}, Index: uint32(seed)}}
}

// TxBuilder assembles a synthetic transaction snapshot.
type TxBuilder struct {
	snap types.Snapshot
}

// NewTx starts a transaction executed by script.
func NewTx(script types.Script) *TxBuilder {
	return &TxBuilder{snap: types.Snapshot{Script: script}}
}

// Input spends cell through ref.
func (b *TxBuilder) Input(ref types.CellInput, cell types.Cell) *TxBuilder {
	b.snap.Inputs = append(b.snap.Inputs, ref)
	b.snap.ResolvedInputs = append(b.snap.ResolvedInputs, cell)
	return b
}

// Output appends an output cell.
func (b *TxBuilder) Output(cell types.Cell) *TxBuilder {
	b.snap.Outputs = append(b.snap.Outputs, cell)
	return b
}

// CellDep appends a dependency cell.
func (b *TxBuilder) CellDep(cell types.Cell) *TxBuilder {
	b.snap.CellDeps = append(b.snap.CellDeps, cell)
	return b
}

// HeaderDep appends a dependency header stamped at ts.
func (b *TxBuilder) HeaderDep(ts uint64) *TxBuilder {
	n := uint64(len(b.snap.HeaderDeps))
	b.snap.HeaderDeps = append(b.snap.HeaderDeps, types.Header{Number: n, Timestamp: ts})
	return b
}

// Snapshot returns the assembled snapshot.
func (b *TxBuilder) Snapshot() types.Snapshot { return b.snap }

// View wraps the snapshot in an in-process view.
func (b *TxBuilder) View(t testing.TB) *local.View {
	t.Helper()
	v, err := local.NewView(b.snap)
	if err != nil {
		t.Fatalf("NewView failed: %v", err)
	}
	return v
}

// --- Transaction Factories ---

// GenesisTx builds a transaction that creates an oracle at outputIndex,
// spending first as its first input. The oracle's args carry the id
// derived from first and outputIndex; outputs before it are plain.
func GenesisTx(first types.CellInput, outputIndex int, tokenCodeHash types.Hash, ts uint64) (*TxBuilder, Oracle) {
	id := identity.DeriveOracleID(identity.Blake2b{}, first, uint64(outputIndex))
	o := NewOracle(id, tokenCodeHash)
	b := NewTx(o.Script).Input(first, PlainCell(nil))
	for i := 0; i < outputIndex; i++ {
		b.Output(PlainCell([]byte{byte(i)}))
	}
	b.Output(o.Cell(types.TimeOracle{OracleID: id, LastUpdated: ts}))
	return b, o
}

// UpdateTx builds a transaction that replaces prev with post, moving the
// oracle's token balance from inTokens to outTokens. Each anchor adds a
// header dep at that timestamp.
func UpdateTx(o Oracle, prev, post types.TimeOracle, inTokens, outTokens uint64, anchors ...uint64) *TxBuilder {
	b := NewTx(o.Script).
		Input(InputRef(1), o.Cell(prev)).
		Input(InputRef(2), o.TokenCell(inTokens)).
		Output(o.Cell(post)).
		Output(o.TokenCell(outTokens))
	for _, ts := range anchors {
		b.HeaderDep(ts)
	}
	return b
}
