package admixture

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Map columns in the fam file to their positions. Any further columns
// (parents, sex, phenotype) are ignored.
const (
	FamPopLabel int = iota
	FamSampleID
)

// Proportions may overshoot 1 by this much due to rounding in the Q file.
const proportionSlack = 1e-6

// Sample is one row of the fam file.
type Sample struct {
	PopLabel string
	SampleID string
}

// ReadFam parses a whitespace-delimited, headerless fam file. The returned
// samples are in file order. source names the input in errors.
func ReadFam(r io.Reader, source string) ([]Sample, error) {
	out := make([]Sample, 0)

	err := scanFields(r, source, func(line int, cols []string) error {
		if len(cols) < FamSampleID+1 {
			return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf("expected at least %d columns, found %d", FamSampleID+1, len(cols))}
		}

		out = append(out, Sample{
			PopLabel: cols[FamPopLabel],
			SampleID: cols[FamSampleID],
		})

		return nil
	})

	return out, err
}

// ReadQ parses a whitespace-delimited, headerless matrix of ancestry
// proportions, one row per sample and one column per ancestral component.
func ReadQ(r io.Reader, source string) ([][]float64, error) {
	out := make([][]float64, 0)

	err := scanFields(r, source, func(line int, cols []string) error {
		row := make([]float64, len(cols))
		for j, v := range cols {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf("column %d: %q is not a number", j+1, v)}
			}
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf("column %d: %q is not finite", j+1, v)}
			}
			if p < 0 || p > 1+proportionSlack {
				return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf("column %d: %v is outside [0, 1]", j+1, p)}
			}
			row[j] = p
		}

		out = append(out, row)

		return nil
	})

	return out, err
}

// scanFields splits every non-blank line on whitespace and hands the fields to
// fn. All rows must carry as many fields as the first one.
func scanFields(r io.Reader, source string, fn func(line int, cols []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	width := -1
	for line := 1; scanner.Scan(); line++ {
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if width < 0 {
			width = len(cols)
		} else if len(cols) != width {
			return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf("found %d fields but the first row has %d", len(cols), width)}
		}

		if err := fn(line, cols); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	return nil
}
