package admixplot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/admixplot/admixture"
)

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	table := Output{Path: filepath.Join(dir, "table.csv"), Data: []byte("Sample,Pop_Label\n")}
	figure := Output{Path: filepath.Join(dir, "plot.svg"), Data: []byte("<svg></svg>")}

	if err := Commit(table, figure); err != nil {
		t.Fatal(err)
	}

	for _, out := range []Output{table, figure} {
		got, err := os.ReadFile(out.Path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(out.Data) {
			t.Errorf("%s: expected %q, got %q", out.Path, out.Data, got)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected only the two outputs, found %d entries", len(entries))
	}
}

func TestCommitWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	table := Output{Path: filepath.Join(dir, "table.csv"), Data: []byte("x")}
	figure := Output{Path: filepath.Join(dir, "missing", "plot.png"), Data: []byte("y")}

	err := Commit(table, figure)

	var writeErr *admixture.IOWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Expected an IOWriteError, got %v", err)
	}
	if writeErr.Path != figure.Path {
		t.Errorf("Expected the failure on %s, got %s", figure.Path, writeErr.Path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected an empty directory, found %d entries", len(entries))
	}
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()

	if err := CheckOutput(filepath.Join(dir, "table.csv")); err != nil {
		t.Error(err)
	}

	for _, path := range []string{
		filepath.Join(dir, "missing", "table.csv"),
		dir,
	} {
		if err := CheckOutput(path); err == nil {
			t.Errorf("%s: expected an error", path)
		}
	}
}
