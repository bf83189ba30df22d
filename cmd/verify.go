package cmd

import (
	"github.com/Rana718/tabqa/internal/corpus"
	"github.com/Rana718/tabqa/internal/export"
	"github.com/Rana718/tabqa/internal/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyTable string

var verifyCmd = &cobra.Command{
	Use:   "verify <corpus>",
	Short: "Check that every question is answered by its referenced fact",
	Long: `Read a corpus (plain or .zst), group it into stories and check each question
against the fact it references. Stories whose facts hold --max-length tokens or
more are dropped first. Pass --table with the source table to parse facts by its
exact column names.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"max_length": "max-length",
			"delimiter":  "delimiter",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := corpus.ReadOptions{MaxLength: cfg.MaxLength}
		if verifyTable != "" {
			t, err := table.LoadFile(cfg.ResolveInput(verifyTable), table.Options{Delimiter: cfg.DelimiterRune()})
			if err != nil {
				return err
			}
			opts.Columns = t.ColumnNames()
		}

		path := cfg.ResolveInput(args[0])
		r, err := export.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()

		c, err := corpus.Read(r, path, opts)
		if err != nil {
			return err
		}
		if err := corpus.Verify(c, path); err != nil {
			return err
		}

		color.Green("✅ %d stories verified (%d facts)", len(c.Stories), c.Facts)
		if c.Dropped > 0 {
			color.Yellow("ℹ️  %d stories dropped by max_length %d", c.Dropped, cfg.MaxLength)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Int("max-length", 0, "Drop stories with this many fact tokens or more (0 = keep all)")
	verifyCmd.Flags().String("delimiter", ";", "Field delimiter of the --table file")
	verifyCmd.Flags().StringVar(&verifyTable, "table", "", "Source table whose column names parse the facts")
}
