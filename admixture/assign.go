package admixture

import "gonum.org/v1/gonum/floats"

// Assign labels every row with the component carrying its largest ancestry
// proportion. Exact ties go to the earliest component. Row order and the
// existing columns are left untouched.
func Assign(t *Table) *Table {
	if t.K == 0 {
		return t
	}

	for i := range t.Rows {
		t.Rows[i].Assignment = ComponentName(floats.MaxIdx(t.Rows[i].Proportions))
	}

	return t
}
