package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rana718/tabqa/internal/export"
	"github.com/Rana718/tabqa/internal/profile"
	"github.com/Rana718/tabqa/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	profileOutput   string
	profileDBTables []string
)

var profileCmd = &cobra.Command{
	Use:   "profile [tables...]",
	Short: "Show per-column statistics of each table",
	Long: `Show the distinct value count, kind and sample values of every column, and
which text columns qualify as the question key. With --output the report is
written as YAML (.yaml, .yml) or JSON.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"delimiter":    "delimiter",
			"limit":        "limit",
			"sample_bound": "sample-bound",
			"min_distinct": "min-distinct",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tables, err := loadTables(cmd.Context(), cfg, args, profileDBTables, cfg.NewRand())
		if err != nil {
			return err
		}

		opts := profile.Options{SampleBound: cfg.SampleBound, MinDistinct: cfg.MinDistinct}
		reports := make([]profile.TableProfile, 0, len(tables))
		for _, t := range tables {
			reports = append(reports, profile.Profile(t, opts))
		}

		if profileOutput != "" {
			if err := export.WriteProfile(reports, profileOutput); err != nil {
				return err
			}
			color.Green("✅ Profile of %d table(s) written to %s", len(reports), profileOutput)
			return nil
		}

		for _, p := range reports {
			printProfile(p)
		}
		return nil
	},
}

func printProfile(p profile.TableProfile) {
	color.Cyan("📊 %s (%d rows, mean distinct %.2f)", p.Name, p.Rows, p.MeanDistinct)

	rows := make([][]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		samples := make([]string, len(c.SampleValues))
		for i, v := range c.SampleValues {
			samples[i] = v.String()
		}

		key := ""
		if c.IsCategorical {
			key = "yes"
		}
		rows = append(rows, []string{c.Name, c.Kind.String(), strconv.Itoa(c.DistinctCount), key, strings.Join(samples, ", ")})
	}
	utils.RenderTable(os.Stdout, []string{"column", "kind", "distinct", "key", "samples"}, rows)

	if _, err := p.Categorical(); err != nil {
		color.Yellow("⚠️  no column qualifies as the question key")
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "Write the report to a .yaml or .json file")
	profileCmd.Flags().String("delimiter", ";", "Field delimiter of input files")
	profileCmd.Flags().Int("limit", 0, "Profile only the first N rows of each table (0 = all)")
	profileCmd.Flags().Int("sample-bound", 10, "Distinct sample values kept per column")
	profileCmd.Flags().Int("min-distinct", 2, "Distinct values a text column needs to be the question key")
	profileCmd.Flags().StringSliceVar(&profileDBTables, "db-table", nil, "Read a table from the configured database (repeatable, * for all)")
}
