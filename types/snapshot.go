package types

// Snapshot is a complete, immutable view of one transaction as handed
// over by a host. Inputs and ResolvedInputs are parallel: ResolvedInputs[i]
// is the cell spent by Inputs[i].
type Snapshot struct {
	// Identity of the executing script.
	Script Script `cramberry:"1"`
	// Input references, in transaction order.
	Inputs []CellInput `cramberry:"2"`
	// Cells consumed by Inputs.
	ResolvedInputs []Cell   `cramberry:"3"`
	Outputs        []Cell   `cramberry:"4"`
	CellDeps       []Cell   `cramberry:"5"`
	HeaderDeps     []Header `cramberry:"6"`
}
