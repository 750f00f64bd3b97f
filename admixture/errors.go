package admixture

import "fmt"

// MalformedInputError reports a row or field shape violation in one of the
// input tables.
type MalformedInputError struct {
	Source string // Path or name of the offending input
	Line   int    // 1-based line number; 0 if not tied to a line
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input %s (line %d): %s", e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Source, e.Reason)
}

// AlignmentError is returned when the metadata and proportions tables cannot
// be joined row for row.
type AlignmentError struct {
	MetadataRows   int
	ProportionRows int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("proportions file has %d rows but metadata file has %d rows", e.ProportionRows, e.MetadataRows)
}

// IOWriteError wraps a failure to write an output destination.
type IOWriteError struct {
	Path string
	Err  error
}

func (e *IOWriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *IOWriteError) Unwrap() error {
	return e.Err
}
