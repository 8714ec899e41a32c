package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lead-miners/prospect/internal/generate"
	"github.com/lead-miners/prospect/internal/webform"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a web form for article generation",
	Long: `Serve starts a small HTTP server with a form for pasting article
titles. Submitted titles run through the same generation pipeline as the
generate command; the response reports per-title outcomes.`,
	Example: `  # Serve on the default :8080
  prospect serve

  # Custom listen address and output directory
  prospect serve --listen :9000 --blog-dir articles/`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (host:port)")
	serveCmd.Flags().String("blog-dir", "", "Directory for generated articles")
	serveCmd.Flags().String("model", "", "Generation model name")
	serveCmd.Flags().String("api-key", "", "Generation API key (or set GEMINI_API_KEY)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a := GetApp()
	cfg := a.Config

	if cfg.GenAPIKey == "" {
		return fmt.Errorf("no API key configured: set GEMINI_API_KEY or pass --api-key")
	}

	server := webform.NewServer(a.Generator, generate.PipelineConfig{
		OutputDir: cfg.BlogDir,
		SleepMin:  cfg.GenSleepMin,
		SleepMax:  cfg.GenSleepMax,
	})

	return server.Run(cfg.ListenAddr)
}
