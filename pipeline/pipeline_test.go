package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/admixplot/admixture"
	"github.com/carbocation/admixplot/config"
	"github.com/carbocation/admixplot/grouplayout"
	"github.com/charmbracelet/log"
)

const famBody = `EUR s1 0 0 1 -9
AFR s2 0 0 2 -9
EUR s3 0 0 1 -9
AFR s4 0 0 2 -9
EAS s5 0 0 1 -9
`

const qBody = `0.900000 0.050000 0.050000
0.100000 0.850000 0.050000
0.500000 0.500000 0.000000
0.200000 0.700000 0.100000
0.050000 0.050000 0.900000
`

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width = 600
	cfg.Height = 200
	return cfg
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

func writeInputs(t *testing.T, fam, q string) (string, Paths) {
	dir := t.TempDir()

	paths := Paths{
		Fam:    filepath.Join(dir, "data.fam"),
		Q:      filepath.Join(dir, "data.3.Q"),
		Table:  filepath.Join(dir, "table.csv"),
		Figure: filepath.Join(dir, "plot.svg"),
	}

	if err := os.WriteFile(paths.Fam, []byte(fam), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.Q, []byte(q), 0644); err != nil {
		t.Fatal(err)
	}

	return dir, paths
}

func assertNoOutputs(t *testing.T, paths Paths) {
	t.Helper()

	for _, path := range []string{paths.Table, paths.Figure} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected %s not to exist", path)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(paths.Table))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("Temporary file %s left behind", e.Name())
		}
	}
}

func TestRun(t *testing.T) {
	_, paths := writeInputs(t, famBody, qBody)

	if err := Run(context.Background(), testConfig(), paths, nil, testLogger()); err != nil {
		t.Fatal(err)
	}

	table, err := os.ReadFile(paths.Table)
	if err != nil {
		t.Fatal(err)
	}

	expected := `Sample,Pop_Label,pop1,pop2,pop3,assignment
s2,AFR,0.100000,0.850000,0.050000,pop2
s4,AFR,0.200000,0.700000,0.100000,pop2
s5,EAS,0.050000,0.050000,0.900000,pop3
s1,EUR,0.900000,0.050000,0.050000,pop1
s3,EUR,0.500000,0.500000,0.000000,pop1
`
	if string(table) != expected {
		t.Errorf("Expected table\n%s\ngot\n%s", expected, table)
	}

	figure, err := os.ReadFile(paths.Figure)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(figure, []byte("<svg")) {
		t.Errorf("Expected an SVG figure, got %q", figure[:10])
	}
	for _, label := range []string{"AFR", "EAS", "EUR", "K = 3"} {
		if !bytes.Contains(figure, []byte(label)) {
			t.Errorf("Expected %q in the figure", label)
		}
	}

	rows, err := admixture.ReadExported(bytes.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 || rows[0].SampleID != "s2" || rows[4].Assignment != "pop1" {
		t.Errorf("Unexpected round trip %+v", rows)
	}
}

func TestRunModesAndFormats(t *testing.T) {
	for _, mode := range []grouplayout.Mode{grouplayout.ModeBoundaries, grouplayout.ModeCentered, grouplayout.ModeFirstBar} {
		for _, ext := range []string{".png", ".svg", ".jpg", ".pdf"} {
			dir, paths := writeInputs(t, famBody, qBody)
			paths.Figure = filepath.Join(dir, "plot"+ext)

			cfg := testConfig()
			cfg.Layout = mode.String()
			if mode == grouplayout.ModeFirstBar {
				cfg.BarWidth = 0.8
			}

			if err := Run(context.Background(), cfg, paths, nil, testLogger()); err != nil {
				t.Errorf("%v %s: %v", mode, ext, err)
				continue
			}

			fstat, err := os.Stat(paths.Figure)
			if err != nil {
				t.Errorf("%v %s: %v", mode, ext, err)
				continue
			}
			if fstat.Size() == 0 {
				t.Errorf("%v %s: empty figure", mode, ext)
			}
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	_, paths := writeInputs(t, "", "")

	err := Run(context.Background(), testConfig(), paths, nil, testLogger())
	if !errors.As(err, &grouplayout.EmptyGroupError{}) {
		t.Fatalf("Expected EmptyGroupError, got %v", err)
	}

	assertNoOutputs(t, paths)
}

func TestRunMismatchedRows(t *testing.T) {
	var fam, q strings.Builder
	for i := 0; i < 500; i++ {
		if i < 499 {
			fmt.Fprintf(&fam, "POP%d s%d 0 0 1 -9\n", i%3, i)
		}
		fmt.Fprintf(&q, "0.5 0.5\n")
	}

	_, paths := writeInputs(t, fam.String(), q.String())

	err := Run(context.Background(), testConfig(), paths, nil, testLogger())

	var alignErr *admixture.AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("Expected AlignmentError, got %v", err)
	}
	if alignErr.MetadataRows != 499 || alignErr.ProportionRows != 500 {
		t.Errorf("Unexpected row counts %+v", alignErr)
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != "join" {
		t.Errorf("Expected the join stage to fail, got %v", err)
	}

	assertNoOutputs(t, paths)
}

func TestRunMalformedInput(t *testing.T) {
	_, paths := writeInputs(t, famBody, strings.Replace(qBody, "0.850000", "oops", 1))

	err := Run(context.Background(), testConfig(), paths, nil, testLogger())

	var malformed *admixture.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedInputError, got %v", err)
	}
	if malformed.Source != paths.Q || malformed.Line != 2 {
		t.Errorf("Expected %s line 2, got %s line %d", paths.Q, malformed.Source, malformed.Line)
	}

	assertNoOutputs(t, paths)
}

func TestRunFailsBeforeProcessing(t *testing.T) {
	dir, paths := writeInputs(t, famBody, qBody)

	cases := map[string]Paths{
		"missing fam":        {Fam: filepath.Join(dir, "nope.fam"), Q: paths.Q, Table: paths.Table, Figure: paths.Figure},
		"missing output dir": {Fam: paths.Fam, Q: paths.Q, Table: filepath.Join(dir, "nope", "table.csv"), Figure: paths.Figure},
		"unsupported figure": {Fam: paths.Fam, Q: paths.Q, Table: paths.Table, Figure: filepath.Join(dir, "plot.gif")},
	}

	for name, p := range cases {
		err := Run(context.Background(), testConfig(), p, nil, testLogger())

		var stageErr *StageError
		if !errors.As(err, &stageErr) || stageErr.Stage != "check" {
			t.Errorf("%s: expected a check failure, got %v", name, err)
		}

		assertNoOutputs(t, paths)
	}
}
