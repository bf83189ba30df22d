package cmd

import (
	"fmt"

	"github.com/Rana718/tabqa/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default tabqa.config.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		cfg := config.DefaultConfig()
		color.Green("✅ Successfully initialized tabqa project")
		fmt.Println()
		fmt.Println("📝 Configuration file created:")
		fmt.Printf("   %s\n", config.FileName)
		fmt.Println("📁 Put your tables in:")
		fmt.Printf("   %s/\n", cfg.DataDir)
		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   tabqa profile cities.csv     # Inspect columns\n")
		fmt.Printf("   tabqa generate cities.csv    # Corpus from real rows\n")
		fmt.Printf("   tabqa simulate cities.csv    # Synthetic training corpus\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
