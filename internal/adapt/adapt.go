// internal/adapt/adapt.go
//
// Package adapt implements the diet adaptation stages: sign inversion,
// snapshot-based augmentation with the fixed reference lists, micronutrient
// rescaling, and the setup-specific identifier rewrite.
package adapt

import (
	"dietadapt/internal/diet"
	"dietadapt/internal/refdata"
)

// Apply runs the pre-validation stages on a loaded diet table: invert signs,
// augment with essential metabolites and unmapped compounds, append the
// cholesterol row, rescale micronutrients. The returned snapshot is the table
// as loaded (identifiers + original signed input values); Rewrite needs it for
// the Microbiota upper-bound lookup.
func Apply(t diet.Table, lists *refdata.Lists) (diet.Table, diet.Snapshot) {
	snap := diet.TakeSnapshot(t)
	out := Invert(t.Clone())
	out = Augment(out, snap, lists.Essential)
	out = Augment(out, snap, lists.Unmapped)
	out = append(out, diet.Constraint{ID: refdata.CholesterolID, Lower: refdata.CholesterolBound})
	Rescale(out, lists.Micronutrients)
	return out, snap
}

// Invert negates every lower bound. Diet inputs are uptake magnitudes; the
// model convention is a signed flux bound with uptake negative.
func Invert(t diet.Table) diet.Table {
	for i := range t {
		t[i].Lower = -t[i].Lower
	}
	return t
}

// Augment appends one row, at the list's default bound, for every list entry
// absent from the snapshot. Membership is checked against the snapshot of the
// originally loaded table, never the partially augmented one, so both
// augmentation passes see the same baseline. An identifier on both reference
// lists is appended by both passes; when the table is later applied to a
// model, the last row for an identifier wins. Appended rows follow the list's
// order.
func Augment(t diet.Table, snap diet.Snapshot, list refdata.BoundedList) diet.Table {
	for _, id := range list.Exchanges {
		if snap.Has(id) {
			continue
		}
		t = append(t, diet.Constraint{ID: id, Lower: list.Bound})
	}
	return t
}

// Rescale multiplies, in place, the lower bound of every row in the
// micronutrient set whose magnitude is at or below the threshold. The check is
// pointwise; callers must not re-apply it to an already rescaled table.
func Rescale(t diet.Table, list refdata.ScaledList) {
	set := refdata.Set(list.Exchanges)
	for i := range t {
		if _, ok := set[t[i].ID]; !ok {
			continue
		}
		v := t[i].Lower
		if v < 0 {
			v = -v
		}
		if v <= list.Threshold {
			t[i].Lower *= list.Factor
		}
	}
}

// CorrectedForValidation returns a copy of the table with the
// adenosylcobalamin identifier renamed to the spelling the model files use.
// The growth test runs on this copy; the caller's table is untouched.
func CorrectedForValidation(t diet.Table) diet.Table {
	out := t.Clone()
	for i := range out {
		if out[i].ID == refdata.Adocbl {
			out[i].ID = refdata.AdocblAlt
		}
	}
	return out
}
