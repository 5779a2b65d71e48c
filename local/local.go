// Package local provides an in-process transaction view.
//
// Hosts that already hold a decoded transaction, and tests that build
// synthetic ones, wrap a types.Snapshot in a View. Group sides are
// resolved once at construction by comparing each cell's type script
// with the executing script.
package local

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"

	"github.com/blockberries/timeoracle"
	"github.com/blockberries/timeoracle/identity"
	"github.com/blockberries/timeoracle/types"
)

// Compile-time interface check.
var _ timeoracle.TxView = (*View)(nil)

// View is a read-only timeoracle.TxView over a snapshot.
type View struct {
	snap   types.Snapshot
	hasher identity.Hasher

	// Positions of group cells on the full input and output sides.
	groupInputs  []int
	groupOutputs []int
}

// Option configures a View.
type Option func(*View)

// WithHasher overrides the hash used for CellTypeHash. Defaults to
// identity.Blake2b.
func WithHasher(h identity.Hasher) Option {
	return func(v *View) { v.hasher = h }
}

// NewView wraps snap. The snapshot must not be modified afterwards.
func NewView(snap types.Snapshot, opts ...Option) (*View, error) {
	if len(snap.Inputs) != len(snap.ResolvedInputs) {
		return nil, fmt.Errorf("snapshot has %d inputs but %d resolved cells", len(snap.Inputs), len(snap.ResolvedInputs))
	}
	v := &View{snap: snap, hasher: identity.Blake2b{}}
	for _, opt := range opts {
		opt(v)
	}
	v.groupInputs = groupOf(snap.ResolvedInputs, snap.Script)
	v.groupOutputs = groupOf(snap.Outputs, snap.Script)
	return v, nil
}

// Decode unmarshals a cramberry-encoded snapshot and wraps it.
func Decode(data []byte, opts ...Option) (*View, error) {
	var snap types.Snapshot
	if err := cramberry.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("cramberry unmarshal snapshot: %w", err)
	}
	return NewView(snap, opts...)
}

// Encode marshals a snapshot for Decode.
func Encode(snap types.Snapshot) ([]byte, error) {
	data, err := cramberry.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal snapshot: %w", err)
	}
	return data, nil
}

func groupOf(cells []types.Cell, self types.Script) []int {
	var idx []int
	for i, c := range cells {
		if c.Type != nil && c.Type.Equal(self) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Snapshot returns the wrapped snapshot.
func (v *View) Snapshot() types.Snapshot { return v.snap }

func (v *View) Script() (types.Script, error) { return v.snap.Script, nil }

func (v *View) cell(index int, src timeoracle.Source) (types.Cell, error) {
	var cells []types.Cell
	switch src {
	case timeoracle.SourceInput:
		cells = v.snap.ResolvedInputs
	case timeoracle.SourceOutput:
		cells = v.snap.Outputs
	case timeoracle.SourceCellDep:
		cells = v.snap.CellDeps
	case timeoracle.SourceGroupInput:
		return v.group(index, src, v.groupInputs, v.snap.ResolvedInputs)
	case timeoracle.SourceGroupOutput:
		return v.group(index, src, v.groupOutputs, v.snap.Outputs)
	default:
		return types.Cell{}, fmt.Errorf("no cells on %s: %w", src, timeoracle.ErrItemMissing)
	}
	if index < 0 || index >= len(cells) {
		return types.Cell{}, fmt.Errorf("%s[%d]: %w", src, index, timeoracle.ErrIndexOutOfBound)
	}
	return cells[index], nil
}

func (v *View) group(index int, src timeoracle.Source, positions []int, cells []types.Cell) (types.Cell, error) {
	if index < 0 || index >= len(positions) {
		return types.Cell{}, fmt.Errorf("%s[%d]: %w", src, index, timeoracle.ErrIndexOutOfBound)
	}
	return cells[positions[index]], nil
}

func (v *View) CellType(index int, src timeoracle.Source) (*types.Script, error) {
	c, err := v.cell(index, src)
	if err != nil {
		return nil, err
	}
	if c.Type == nil {
		return nil, nil
	}
	s := *c.Type
	return &s, nil
}

func (v *View) CellTypeHash(index int, src timeoracle.Source) (*types.Hash, error) {
	c, err := v.cell(index, src)
	if err != nil {
		return nil, err
	}
	if c.Type == nil {
		return nil, nil
	}
	h := identity.ScriptHash(v.hasher, *c.Type)
	return &h, nil
}

func (v *View) CellData(index int, src timeoracle.Source) ([]byte, error) {
	c, err := v.cell(index, src)
	if err != nil {
		return nil, err
	}
	return c.Data, nil
}

func (v *View) Input(index int) (types.CellInput, error) {
	if index < 0 || index >= len(v.snap.Inputs) {
		return types.CellInput{}, fmt.Errorf("input[%d]: %w", index, timeoracle.ErrIndexOutOfBound)
	}
	return v.snap.Inputs[index], nil
}

func (v *View) Header(index int, src timeoracle.Source) (types.Header, error) {
	if src != timeoracle.SourceHeaderDep {
		return types.Header{}, fmt.Errorf("no headers on %s: %w", src, timeoracle.ErrItemMissing)
	}
	if index < 0 || index >= len(v.snap.HeaderDeps) {
		return types.Header{}, fmt.Errorf("%s[%d]: %w", src, index, timeoracle.ErrIndexOutOfBound)
	}
	return v.snap.HeaderDeps[index], nil
}
