package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/tabqa/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	force   bool
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║   ████████╗ █████╗ ██████╗  ██████╗  █████╗  ║",
		"║   ╚══██╔══╝██╔══██╗██╔══██╗██╔═══██╗██╔══██╗ ║",
		"║      ██║   ███████║██████╔╝██║   ██║███████║ ║",
		"║      ██║   ██╔══██║██╔══██╗██║▄▄ ██║██╔══██║ ║",
		"║      ██║   ██║  ██║██████╔╝╚██████╔╝██║  ██║ ║",
		"║      ╚═╝   ╚═╝  ╚═╝╚═════╝  ╚══▀▀═╝ ╚═╝  ╚═╝ ║",
		"║                                              ║",
		"║      tables in, bAbI question corpora out    ║",
		"╚══════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "tabqa",
	Short: "Generate bAbI-style question answering corpora from tables",
	Long: `
tabqa turns delimited tables (or database tables) into a question answering
corpus in the bAbI format: numbered fact lines, one per row, followed by a
question about one of them.

Modes:
- generate  facts from the real rows of each table
- simulate  facts sampled from each column's distinct values
- profile   per-column statistics used to pick the question key
- verify    check a corpus against its referenced facts`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("tabqa version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tabqa.config.json)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "Skip confirmations")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("tabqa.config")
	}

	config.BindEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
	}
}
