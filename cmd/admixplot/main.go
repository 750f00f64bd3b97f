// admixplot joins a fam file with an ADMIXTURE Q matrix, assigns each sample
// to its dominant ancestral component, and writes the sorted table alongside a
// stacked bar plot grouped by population.
//
// Plot styling and the log level may be set in a TOML file named by the
// ADMIXPLOT_CONFIG environment variable.
package main

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/admixplot"
	"github.com/carbocation/admixplot/compileinfo"
	"github.com/carbocation/admixplot/config"
	"github.com/carbocation/admixplot/pipeline"
	"github.com/carbocation/pfx"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := newLogger(os.Stderr, log.InfoLevel)

	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		logger.Error("admixplot failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	var paths pipeline.Paths

	cmd := &cobra.Command{
		Use:           "admixplot --fam PATH --Q PATH --df_csv PATH --out_plot PATH",
		Short:         "Plot and tabulate ADMIXTURE ancestry proportions by population",
		Args:          cobra.NoArgs,
		Version:       compileinfo.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)

			logger.Debug("Build", compileinfo.Get().KeyVals()...)
			if cfg.ConfigPath != "" {
				logger.Debug("Loaded config", "path", cfg.ConfigPath)
			}

			ctx := cmd.Context()

			var client *storage.Client
			if admixplot.AnyGoogleStorage(paths.Inputs()...) {
				client, err = storage.NewClient(ctx)
				if err != nil {
					return pfx.Err(err)
				}
				defer client.Close()
			}

			logger.Info("Starting", "fam", paths.Fam, "Q", paths.Q, "layout", cfg.Layout)

			return pipeline.Run(ctx, cfg, paths, client, logger)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().StringVar(&paths.Fam, "fam", "", "Path to the .fam file (population label, sample ID, ...). May be gs:// and/or compressed.")
	cmd.Flags().StringVar(&paths.Q, "Q", "", "Path to the ADMIXTURE .Q proportions file. May be gs:// and/or compressed.")
	cmd.Flags().StringVar(&paths.Table, "df_csv", "", "Path for the output CSV table.")
	cmd.Flags().StringVar(&paths.Figure, "out_plot", "", "Path for the output figure. The extension picks the format: .png, .svg, .pdf, .jpg or .jpeg.")

	for _, name := range []string{"fam", "Q", "df_csv", "out_plot"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}
