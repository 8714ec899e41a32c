package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lead-miners/prospect/internal/generate"
	"github.com/lead-miners/prospect/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate markdown articles from a list of titles",
	Long: `Generate reads one article title per line from the titles file, asks
the generation API for a full article per title, and saves each result as a
markdown file. A title whose generation fails is skipped and listed in the
run summary; no partial file is written for it.`,
	Example: `  # Generate articles from the default titles.txt into blog/
  prospect generate

  # Custom titles file, output directory, and model
  prospect generate --titles ideas.txt --blog-dir articles/ --model gemini-2.5-pro`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("titles", "t", "", "File with one article title per line")
	generateCmd.Flags().String("blog-dir", "", "Directory for generated articles")
	generateCmd.Flags().String("model", "", "Generation model name")
	generateCmd.Flags().String("api-key", "", "Generation API key (or set GEMINI_API_KEY)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a := GetApp()
	cfg := a.Config

	if cfg.GenAPIKey == "" {
		return fmt.Errorf("no API key configured: set GEMINI_API_KEY or pass --api-key")
	}

	titles, err := generate.LoadTitles(cfg.TitlesFile)
	if err != nil {
		return err
	}

	pipeline := generate.NewPipeline(a.Generator, generate.PipelineConfig{
		OutputDir: cfg.BlogDir,
		SleepMin:  cfg.GenSleepMin,
		SleepMax:  cfg.GenSleepMax,
		Progress:  true,
	})

	sum, err := pipeline.Run(cmd.Context(), titles)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", ui.Bold("Generation complete"))
	fmt.Fprintf(os.Stdout, "  Attempted: %d\n", sum.Attempted)
	fmt.Fprintf(os.Stdout, "  %s %d\n", ui.Success("Succeeded:"), sum.Succeeded)
	if sum.Failed > 0 {
		fmt.Fprintf(os.Stdout, "  %s %d\n", ui.Error("Failed:   "), sum.Failed)
		for _, title := range sum.FailedTitles {
			fmt.Fprintf(os.Stdout, "    - %s\n", title)
		}
	}
	fmt.Fprintf(os.Stdout, "  Output:    %s\n", cfg.BlogDir)

	return nil
}
