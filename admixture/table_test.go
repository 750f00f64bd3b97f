package admixture

import (
	"errors"
	"reflect"
	"testing"
)

func makeInputs(labels []string) ([]Sample, [][]float64) {
	samples := make([]Sample, len(labels))
	proportions := make([][]float64, len(labels))
	for i, label := range labels {
		samples[i] = Sample{PopLabel: label, SampleID: "S" + string(rune('a'+i))}
		proportions[i] = []float64{0.2, 0.3, 0.5}
	}
	return samples, proportions
}

func TestJoinSortsStably(t *testing.T) {
	samples, proportions := makeInputs([]string{"CEU", "YRI", "CEU", "CHB", "YRI", "CEU"})

	tab, err := Join(samples, proportions, "test.fam")
	if err != nil {
		t.Fatal(err)
	}

	got := make([]string, 0, len(tab.Rows))
	for _, row := range tab.Rows {
		got = append(got, row.PopLabel+":"+row.SampleID)
	}

	expected := []string{"CEU:Sa", "CEU:Sc", "CEU:Sf", "CHB:Sd", "YRI:Sb", "YRI:Se"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	for i, row := range tab.Rows {
		if pos, ok := tab.Position(row.SampleID); !ok || pos != i {
			t.Errorf("Index puts %s at %d (found: %v), expected %d", row.SampleID, pos, ok, i)
		}
	}

	if tab.Reference[1].SampleID != "Sb" {
		t.Errorf("Reference order was not preserved: %+v", tab.Reference)
	}
}

func TestJoinColumns(t *testing.T) {
	samples, proportions := makeInputs([]string{"A", "B"})

	tab, err := Join(samples, proportions, "test.fam")
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"Sample", "Pop_Label", "pop1", "pop2", "pop3", "assignment"}
	if got := tab.Columns(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected columns %v, got %v", expected, got)
	}
	if len(tab.Rows) != 2 || tab.K != 3 {
		t.Errorf("Expected 2 rows with K=3, got %d rows with K=%d", len(tab.Rows), tab.K)
	}
}

func TestJoinRowCountMismatch(t *testing.T) {
	samples, _ := makeInputs(make([]string, 499))
	_, proportions := makeInputs(make([]string, 500))

	_, err := Join(samples, proportions, "test.fam")

	var alignment *AlignmentError
	if !errors.As(err, &alignment) {
		t.Fatalf("Expected AlignmentError, got %v", err)
	}
	if alignment.MetadataRows != 499 || alignment.ProportionRows != 500 {
		t.Errorf("Unexpected counts in %+v", alignment)
	}
	if msg := err.Error(); msg != "proportions file has 500 rows but metadata file has 499 rows" {
		t.Errorf("Unexpected message: %s", msg)
	}
}

func TestJoinDuplicateSample(t *testing.T) {
	samples, proportions := makeInputs([]string{"A", "B"})
	samples[1].SampleID = samples[0].SampleID

	_, err := Join(samples, proportions, "test.fam")

	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedInputError, got %v", err)
	}
}

func TestJoinEmpty(t *testing.T) {
	tab, err := Join(nil, nil, "empty.fam")
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 0 || tab.K != 0 {
		t.Errorf("Expected an empty table, got %d rows with K=%d", len(tab.Rows), tab.K)
	}
}

func TestOffSimplex(t *testing.T) {
	samples, proportions := makeInputs([]string{"A", "A", "B"})
	proportions[1] = []float64{0.2, 0.3, 0.4}

	tab, err := Join(samples, proportions, "test.fam")
	if err != nil {
		t.Fatal(err)
	}

	if off := tab.OffSimplex(1e-3); !reflect.DeepEqual(off, []string{"Sb"}) {
		t.Errorf("Expected only Sb to be off the simplex, got %v", off)
	}
}
