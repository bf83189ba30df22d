package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/tabqa/internal/config"
	"github.com/Rana718/tabqa/internal/corpus"
	"github.com/Rana718/tabqa/internal/export"
	"github.com/Rana718/tabqa/internal/profile"
	"github.com/Rana718/tabqa/internal/seeder"
	"github.com/Rana718/tabqa/internal/types"
	"github.com/Rana718/tabqa/internal/utils"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateDBTables []string

var generateCmd = &cobra.Command{
	Use:   "generate [tables...]",
	Short: "Write a corpus from the rows of each table",
	Long: `Write one fact line per table row and a question after every --size rows.
All tables go into one output file, in the order given. File names that do not
exist are looked up in data_dir.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output.table_data":  "out",
			"output.compression": "compress",
			"size":               "size",
			"delimiter":          "delimiter",
			"shuffle":            "shuffle",
			"limit":              "limit",
			"seed":               "seed",
			"min_distinct":       "min-distinct",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return writeCorpus(cmd.Context(), cfg, args, generateDBTables, false)
	},
}

// writeCorpus runs real or synthetic mode over every table into one sink.
// Each table starts with fresh generator state.
func writeCorpus(ctx context.Context, cfg *config.Config, files, dbTables []string, synthetic bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rng := cfg.NewRand()

	tables, err := loadTables(ctx, cfg, files, dbTables, rng)
	if err != nil {
		return err
	}

	outPath := cfg.Output.TableData
	if synthetic {
		outPath = cfg.Output.SimData
	}
	if !utils.ConfirmOverwrite(export.ResolvePath(outPath, cfg.Output.Compression), force) {
		color.Yellow("⚠️  Cancelled, %s left unchanged", outPath)
		return nil
	}

	sink, err := export.Create(outPath, cfg.Output.Compression)
	if err != nil {
		return err
	}

	var total corpus.Stats
	for _, t := range tables {
		stats, err := writeTable(sink, cfg, t, rng, synthetic)
		if err != nil {
			sink.Close()
			return err
		}
		total.Facts += stats.Facts
		total.Questions += stats.Questions
		total.Skipped += stats.Skipped

		log.WithFields(log.Fields{
			"table":     t.Name,
			"facts":     stats.Facts,
			"questions": stats.Questions,
			"skipped":   stats.Skipped,
		}).Debug("table done")
	}

	if err := sink.Close(); err != nil {
		return err
	}

	color.Green("✅ Wrote %d facts and %d questions from %d table(s) to %s", total.Facts, total.Questions, len(tables), sink.Path)
	if total.Skipped > 0 {
		color.Yellow("ℹ️  %d question attempt(s) drew the key column and were skipped", total.Skipped)
	}
	return nil
}

func writeTable(sink *export.Sink, cfg *config.Config, t *types.Table, rng types.Rand, synthetic bool) (corpus.Stats, error) {
	p := profile.Profile(t, profile.Options{SampleBound: cfg.SampleBound, MinDistinct: cfg.MinDistinct})
	cat, err := p.Categorical()
	if err != nil {
		return corpus.Stats{}, fmt.Errorf("%s: %w", t.Name, err)
	}
	log.Debugf("%s: key column %q, categorical columns %v", t.Name, p.Columns[cat].Name, p.CategoricalColumns())

	g, err := corpus.New(sink, p.ColumnNames(), cat, corpus.Options{Size: cfg.Size, NTables: cfg.NTables}, rng)
	if err != nil {
		return corpus.Stats{}, fmt.Errorf("%s: %w", t.Name, err)
	}

	if !synthetic {
		return g.Generate(t)
	}

	sampler, err := seeder.NewSampler(p.Samples(), rng)
	if err != nil {
		return corpus.Stats{}, err
	}
	return g.Simulate(sampler)
}

// addCorpusFlags registers the flags generate and simulate share. Defaults
// mirror config.DefaultConfig so unbound keys behave the same.
func addCorpusFlags(cmd *cobra.Command, dbTables *[]string, outHelp string) {
	defaults := config.DefaultConfig()

	cmd.Flags().String("out", "", outHelp)
	cmd.Flags().String("compress", defaults.Output.Compression, "Output compression (none, zstd)")
	cmd.Flags().Int("size", defaults.Size, "Rows per question block")
	cmd.Flags().String("delimiter", defaults.Delimiter, "Field delimiter of input files")
	cmd.Flags().Bool("shuffle", false, "Shuffle rows before applying --limit")
	cmd.Flags().Int("limit", 0, "Keep only the first N rows of each table (0 = all)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = seed from the clock)")
	cmd.Flags().Int("min-distinct", defaults.MinDistinct, "Distinct values a text column needs to be the question key")
	cmd.Flags().StringSliceVar(dbTables, "db-table", nil, "Read a table from the configured database (repeatable, * for all)")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addCorpusFlags(generateCmd, &generateDBTables, "Output file (default data/table_data.txt)")
}
