package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lead-miners/prospect/internal/browser"
	"github.com/lead-miners/prospect/internal/creds"
	"github.com/lead-miners/prospect/internal/extract"
	"github.com/lead-miners/prospect/internal/scrape"
	"github.com/lead-miners/prospect/internal/ui"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape profile pages into a CSV file",
	Long: `Scrape visits each profile URL from the input file in one browser
session and writes the extracted fields to a CSV file. A target that fails
to load becomes an error row; the run continues with the next target.`,
	Example: `  # Scrape the default profiles.txt into profiles.csv
  prospect scrape

  # Custom input/output, keep cleaned page copies
  prospect scrape --input leads.txt --output leads.csv --archive-dir pages/`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringP("input", "i", "", "File with one profile URL per line")
	scrapeCmd.Flags().StringP("output", "o", "", "CSV file to write")
	scrapeCmd.Flags().String("archive-dir", "", "Directory for cleaned markdown copies of fetched pages")
	scrapeCmd.Flags().Bool("script-fallback", false, "Evaluate inline page scripts to fill missing fields")
	scrapeCmd.Flags().Bool("headless", true, "Run the browser headless")
	scrapeCmd.Flags().Float64("rate", 0, "Max fetches per second per domain")
	scrapeCmd.Flags().String("login-url", "", "Login page URL")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetApp()
	cfg := a.Config

	targets, err := scrape.LoadTargets(cfg.TargetsFile)
	if err != nil {
		return err
	}

	credentials, err := creds.Load()
	if err != nil {
		return err
	}
	if credentials == nil {
		fmt.Fprintln(os.Stderr, ui.Warn("No credentials configured; scraping without login"))
	}

	open := func(bcfg browser.Config) (scrape.Driver, error) {
		return browser.Open(bcfg, a.RateLimiter)
	}

	orch := scrape.New(scrape.Config{
		OutputPath:     cfg.OutputFile,
		ArchiveDir:     cfg.ArchiveDir,
		ScriptFallback: cfg.ScriptFallback,
		Progress:       true,
	}, a.BrowserConfig(), extract.DefaultSelectors(), open)

	res, err := orch.Run(cmd.Context(), targets, credentials)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", ui.Bold("Scrape complete"))
	fmt.Fprintf(os.Stdout, "  Attempted: %d\n", res.Attempted)
	fmt.Fprintf(os.Stdout, "  %s %d\n", ui.Success("Succeeded:"), res.Succeeded)
	if res.Failed > 0 {
		fmt.Fprintf(os.Stdout, "  %s %d\n", ui.Error("Failed:   "), res.Failed)
	}
	fmt.Fprintf(os.Stdout, "  Output:    %s\n", cfg.OutputFile)

	return nil
}
