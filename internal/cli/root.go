package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lead-miners/prospect/internal/app"
	"github.com/lead-miners/prospect/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "prospect",
	Short:   "Profile scraping and article generation toolkit",
	Long:    `Prospect scrapes public profile pages into CSV and turns article titles into generated markdown posts.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Lazily initialize the application before running commands
	// (avoid starting it for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		application, err := app.New(cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, application)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if a := GetApp(); a != nil {
			_ = a.Close()
			SetApp(cmd, nil)
		}
	}
}
