// internal/diet/table.go
package diet

// Constraint is one exchange-reaction bound row. Lower is a signed flux bound
// (negative = uptake). Upper is only populated by the Microbiota setup; HasUpper
// distinguishes "no upper bound column" from an explicit 0.
type Constraint struct {
	ID       string
	Lower    float64
	Upper    float64
	HasUpper bool
}

// Table is an ordered sequence of constraint rows. Insertion order is
// preserved; augmentation appends at the end.
type Table []Constraint

// Contains reports whether any row carries the given identifier.
func (t Table) Contains(id string) bool {
	for i := range t {
		if t[i].ID == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Snapshot is an immutable view of the table as originally loaded: the
// identifier set plus the original signed input values, before sign inversion
// or augmentation. Both augmentation passes and the Microbiota upper-bound
// lookup read from the same snapshot.
type Snapshot struct {
	values map[string]float64
}

// TakeSnapshot captures the current identifiers and values.
func TakeSnapshot(t Table) Snapshot {
	m := make(map[string]float64, len(t))
	for i := range t {
		m[t[i].ID] = t[i].Lower
	}
	return Snapshot{values: m}
}

// Has reports whether id was present in the snapshotted table.
func (s Snapshot) Has(id string) bool {
	_, ok := s.values[id]
	return ok
}

// Value returns the snapshotted value for id, and whether it was present.
func (s Snapshot) Value(id string) (float64, bool) {
	v, ok := s.values[id]
	return v, ok
}
