package admixture

import "testing"

func TestAssign(t *testing.T) {
	for _, v := range []struct {
		Proportions []float64
		Expected    string
	}{
		{[]float64{0.5, 0.5, 0.0}, "pop1"},
		{[]float64{0.1, 0.2, 0.7}, "pop3"},
		{[]float64{0.0, 0.6, 0.4}, "pop2"},
		{[]float64{0.25, 0.375, 0.375}, "pop2"},
		{[]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, "pop1"},
	} {
		tab, err := Join([]Sample{{PopLabel: "X", SampleID: "s1"}}, [][]float64{v.Proportions}, "test.fam")
		if err != nil {
			t.Fatal(err)
		}

		Assign(tab)

		if got := tab.Rows[0].Assignment; got != v.Expected {
			t.Errorf("%v: expected %s, got %s", v.Proportions, v.Expected, got)
		}
	}
}

func TestAssignKeepsOrder(t *testing.T) {
	samples := []Sample{
		{PopLabel: "B", SampleID: "s1"},
		{PopLabel: "A", SampleID: "s2"},
		{PopLabel: "A", SampleID: "s3"},
	}
	proportions := [][]float64{{0.9, 0.1}, {0.2, 0.8}, {0.6, 0.4}}

	tab, err := Join(samples, proportions, "test.fam")
	if err != nil {
		t.Fatal(err)
	}

	Assign(tab)

	for i, v := range []struct{ ID, Assignment string }{
		{"s2", "pop2"},
		{"s3", "pop1"},
		{"s1", "pop1"},
	} {
		if row := tab.Rows[i]; row.SampleID != v.ID || row.Assignment != v.Assignment {
			t.Errorf("Row %d: expected %s/%s, got %s/%s", i, v.ID, v.Assignment, row.SampleID, row.Assignment)
		}
	}
}
