package cmd

import (
	"github.com/spf13/cobra"
)

var simulateDBTables []string

var simulateCmd = &cobra.Command{
	Use:   "simulate [tables...]",
	Short: "Write a synthetic corpus sampled from each table's column values",
	Long: `Profile each table and write rows whose cells are drawn from the distinct
sample values of their column, until --n-tables questions were written for
that table. Use it to grow training data; test on the real rows.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output.sim_data":    "out",
			"output.compression": "compress",
			"size":               "size",
			"delimiter":          "delimiter",
			"shuffle":            "shuffle",
			"limit":              "limit",
			"seed":               "seed",
			"min_distinct":       "min-distinct",
			"n_tables":           "n-tables",
			"sample_bound":       "sample-bound",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return writeCorpus(cmd.Context(), cfg, args, simulateDBTables, true)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	addCorpusFlags(simulateCmd, &simulateDBTables, "Output file (default data/sim_data.txt)")

	simulateCmd.Flags().Int("n-tables", 500, "Questions to write per table")
	simulateCmd.Flags().Int("sample-bound", 10, "Distinct sample values kept per column")
}
