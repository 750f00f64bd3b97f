// Package pipeline runs one admixplot invocation end to end: load the fam and
// Q files, join and assign, lay out the population groups, render the figure
// and the table, and write both outputs together.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/admixplot"
	"github.com/carbocation/admixplot/admixture"
	"github.com/carbocation/admixplot/barplot"
	"github.com/carbocation/admixplot/config"
	"github.com/carbocation/admixplot/grouplayout"
	"github.com/charmbracelet/log"
)

// Paths are the four locations named on the command line.
type Paths struct {
	Fam    string
	Q      string
	Table  string
	Figure string
}

// Inputs lists the input paths.
func (p Paths) Inputs() []string {
	return []string{p.Fam, p.Q}
}

// StageError names the pipeline stage that failed. It unwraps to the
// underlying error, so the typed admixture and grouplayout errors stay
// reachable with errors.As.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Run executes the pipeline. Nothing is written unless every stage succeeds.
// client may be nil when no input lives in Google Storage.
func Run(ctx context.Context, cfg config.Config, paths Paths, client *storage.Client, logger *log.Logger) error {
	mode, err := cfg.Mode()
	if err != nil {
		return &StageError{"config", err}
	}

	palette, err := barplot.Palette(cfg.Palette)
	if err != nil {
		return &StageError{"config", err}
	}

	format, err := barplot.FormatForPath(paths.Figure)
	if err != nil {
		return &StageError{"check", err}
	}

	if err := check(ctx, paths, client); err != nil {
		return &StageError{"check", err}
	}

	st := newStage(logger, "load")
	var samples []admixture.Sample
	if err := readInput(ctx, paths.Fam, client, func(r io.Reader) (err error) {
		samples, err = admixture.ReadFam(r, paths.Fam)
		return
	}); err != nil {
		return &StageError{"load", err}
	}

	var proportions [][]float64
	if err := readInput(ctx, paths.Q, client, func(r io.Reader) (err error) {
		proportions, err = admixture.ReadQ(r, paths.Q)
		return
	}); err != nil {
		return &StageError{"load", err}
	}
	st.done("fam_rows", len(samples), "q_rows", len(proportions))

	st = newStage(logger, "join")
	table, err := admixture.Join(samples, proportions, paths.Fam)
	if err != nil {
		return &StageError{"join", err}
	}
	admixture.Assign(table)
	st.done()

	logger.Info("Joined ancestry table", "samples", len(table.Rows), "K", table.K)

	if off := table.OffSimplex(cfg.SimplexTolerance); len(off) > 0 {
		logger.Warn("Proportions do not sum to 1", "samples", len(off), "tolerance", cfg.SimplexTolerance, "first", off[0])
	}

	st = newStage(logger, "layout")
	layout, err := grouplayout.Compute(mode, layoutInput(table, cfg.BarWidth))
	if err != nil {
		return &StageError{"layout", err}
	}
	st.done("mode", mode, "groups", len(layout.Groups), "boundaries", len(layout.Boundaries))

	if err := logSummary(logger, table); err != nil {
		return &StageError{"summary", err}
	}

	st = newStage(logger, "render")
	figure, err := render(format, cfg, palette, table, layout)
	if err != nil {
		return &StageError{"render", err}
	}

	var csv bytes.Buffer
	if err := admixture.WriteCSV(&csv, table); err != nil {
		return &StageError{"export", &admixture.IOWriteError{Path: paths.Table, Err: err}}
	}
	st.done("figure_bytes", len(figure), "table_bytes", csv.Len())

	if err := admixplot.Commit(
		admixplot.Output{Path: paths.Table, Data: csv.Bytes()},
		admixplot.Output{Path: paths.Figure, Data: figure},
	); err != nil {
		return &StageError{"write", err}
	}

	logger.Info("Wrote outputs", "table", paths.Table, "figure", paths.Figure, "format", format)

	return nil
}

// check confirms that every input can be read and every output can be
// created before any work is done.
func check(ctx context.Context, paths Paths, client *storage.Client) error {
	for _, path := range paths.Inputs() {
		if err := admixplot.CheckInput(ctx, path, client); err != nil {
			return err
		}
	}

	for _, path := range []string{paths.Table, paths.Figure} {
		if err := admixplot.CheckOutput(path); err != nil {
			return err
		}
	}

	return nil
}

// readInput holds the input open only while fn consumes it.
func readInput(ctx context.Context, path string, client *storage.Client, fn func(io.Reader) error) error {
	rc, err := admixplot.OpenInput(ctx, path, client)
	if err != nil {
		return err
	}
	defer rc.Close()

	return fn(rc)
}

func layoutInput(t *admixture.Table, barWidth float64) grouplayout.Input {
	bars := make([]grouplayout.Bar, len(t.Rows))
	for i, row := range t.Rows {
		bars[i] = grouplayout.Bar{SampleID: row.SampleID, Label: row.PopLabel}
	}

	reference := make([]grouplayout.Bar, len(t.Reference))
	for i, s := range t.Reference {
		reference[i] = grouplayout.Bar{SampleID: s.SampleID, Label: s.PopLabel}
	}

	return grouplayout.Input{
		Bars:      bars,
		Reference: reference,
		Index:     t.Index(),
		BarWidth:  barWidth,
	}
}

func render(format barplot.Format, cfg config.Config, palette []color.Color, t *admixture.Table, l grouplayout.Layout) ([]byte, error) {
	font, err := barplot.DefaultFont()
	if err != nil {
		return nil, err
	}

	canvas, err := barplot.NewCanvas(format, cfg.Width, cfg.Height, font)
	if err != nil {
		return nil, err
	}

	opts := barplot.Options{
		Palette:        palette,
		LabelFontSize:  cfg.LabelFontSize,
		TitleFontSize:  cfg.TitleFontSize,
		LegendFontSize: cfg.LegendFontSize,
		BarWidth:       cfg.BarWidth,
		ShowK:          cfg.ShowK,
	}
	if err := barplot.Draw(canvas, t, l, opts); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := canvas.Save(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func logSummary(logger *log.Logger, t *admixture.Table) error {
	summaries, err := admixture.Summarize(t)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		components := make([]string, len(s.Mean))
		for j := range s.Mean {
			components[j] = fmt.Sprintf("%s=%.3f±%.3f", admixture.ComponentName(j), s.Mean[j], s.SD[j])
		}

		logger.Info("Population", "label", s.PopLabel, "n", s.N, "ancestry", strings.Join(components, " "), "assigned", s.Assigned)
	}

	return nil
}

// stage logs how long a pipeline step took.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func newStage(logger *log.Logger, name string) *stage {
	return &stage{logger: logger, name: name, start: time.Now()}
}

func (s *stage) done(keyvals ...interface{}) {
	keyvals = append([]interface{}{"stage", s.name, "elapsed", time.Since(s.start).Round(time.Millisecond)}, keyvals...)
	s.logger.Debug("Finished", keyvals...)
}
