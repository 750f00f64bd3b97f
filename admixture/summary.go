package admixture

import (
	"github.com/montanaflynn/stats"
)

// PopulationSummary describes the ancestry of all samples sharing a
// population label.
type PopulationSummary struct {
	PopLabel string
	N        int

	// Mean and SD hold one entry per ancestral component.
	Mean []float64
	SD   []float64

	// Assigned counts the samples assigned to each component, keyed by
	// component name.
	Assigned map[string]int
}

// Summarize returns one summary per population label, in the order the
// labels first appear in the table's current row order.
func Summarize(t *Table) ([]PopulationSummary, error) {
	order := make([]string, 0)
	members := make(map[string][]Row)
	for _, row := range t.Rows {
		if _, exists := members[row.PopLabel]; !exists {
			order = append(order, row.PopLabel)
		}
		members[row.PopLabel] = append(members[row.PopLabel], row)
	}

	out := make([]PopulationSummary, 0, len(order))
	for _, label := range order {
		rows := members[label]

		summary := PopulationSummary{
			PopLabel: label,
			N:        len(rows),
			Mean:     make([]float64, t.K),
			SD:       make([]float64, t.K),
			Assigned: make(map[string]int),
		}

		column := make(stats.Float64Data, len(rows))
		for j := 0; j < t.K; j++ {
			for i, row := range rows {
				column[i] = row.Proportions[j]
			}

			mean, err := stats.Mean(column)
			if err != nil {
				return nil, err
			}
			summary.Mean[j] = mean

			// A lone sample has no spread
			if len(column) < 2 {
				continue
			}
			sd, err := stats.StandardDeviationSample(column)
			if err != nil {
				return nil, err
			}
			summary.SD[j] = sd
		}

		for _, row := range rows {
			if row.Assignment != "" {
				summary.Assigned[row.Assignment]++
			}
		}

		out = append(out, summary)
	}

	return out, nil
}
