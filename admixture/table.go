package admixture

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Column names used in the exported table.
const (
	ColSample     = "Sample"
	ColPopLabel   = "Pop_Label"
	ColAssignment = "assignment"
)

// ComponentName returns the column name of the 0-based ancestral component j,
// e.g. "pop1" for j == 0.
func ComponentName(j int) string {
	return "pop" + strconv.Itoa(j+1)
}

// Row is one sample of the joined table.
type Row struct {
	SampleID    string
	PopLabel    string
	Proportions []float64

	// Assignment is the name of the component with the largest proportion. It
	// is empty until Assign has run.
	Assignment string
}

// Table is the joined ancestry table, keyed by sample ID.
type Table struct {
	Rows []Row

	// K is the number of ancestral components.
	K int

	// Reference holds the samples in their original fam file order.
	Reference []Sample

	index map[string]int
}

// Components returns the proportion column names, pop1 through popK.
func (t *Table) Components() []string {
	out := make([]string, t.K)
	for j := range out {
		out[j] = ComponentName(j)
	}
	return out
}

// Columns returns the full column layout of the table, with the row key first.
func (t *Table) Columns() []string {
	out := []string{ColSample, ColPopLabel}
	out = append(out, t.Components()...)
	return append(out, ColAssignment)
}

// Position returns the current row position of a sample.
func (t *Table) Position(sampleID string) (int, bool) {
	pos, ok := t.index[sampleID]
	return pos, ok
}

// Index returns the sample ID to row position lookup for the current row
// order. The map is shared with the table and must not be modified.
func (t *Table) Index() map[string]int {
	return t.index
}

// SortByPopLabel stably reorders the rows by population label, so samples
// sharing a label keep their relative order.
func (t *Table) SortByPopLabel() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].PopLabel < t.Rows[j].PopLabel
	})
	t.reindex()
}

// OffSimplex returns the IDs of samples whose proportions sum to a value
// further than tolerance from 1.
func (t *Table) OffSimplex(tolerance float64) []string {
	var out []string
	for _, row := range t.Rows {
		if math.Abs(floats.Sum(row.Proportions)-1) > tolerance {
			out = append(out, row.SampleID)
		}
	}
	return out
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Rows))
	for i, row := range t.Rows {
		t.index[row.SampleID] = i
	}
}

// Join combines fam samples with their proportion rows by position: sample i
// receives proportions[i]. The result is sorted by population label. source
// names the fam input in errors.
func Join(samples []Sample, proportions [][]float64, source string) (*Table, error) {
	if len(samples) != len(proportions) {
		return nil, &AlignmentError{MetadataRows: len(samples), ProportionRows: len(proportions)}
	}

	t := &Table{
		Rows:      make([]Row, 0, len(samples)),
		Reference: make([]Sample, len(samples)),
	}
	copy(t.Reference, samples)

	if len(proportions) > 0 {
		t.K = len(proportions[0])
	}

	seen := make(map[string]int, len(samples))
	for i, s := range samples {
		if first, exists := seen[s.SampleID]; exists {
			return nil, &MalformedInputError{Source: source, Reason: fmt.Sprintf("sample %s on row %d already appeared on row %d", s.SampleID, i+1, first+1)}
		}
		seen[s.SampleID] = i

		if len(proportions[i]) != t.K {
			return nil, &MalformedInputError{Source: source, Reason: fmt.Sprintf("sample %s (row %d) has %d proportions, expected %d", s.SampleID, i+1, len(proportions[i]), t.K)}
		}

		t.Rows = append(t.Rows, Row{
			SampleID:    s.SampleID,
			PopLabel:    s.PopLabel,
			Proportions: proportions[i],
		})
	}

	t.SortByPopLabel()

	return t, nil
}
