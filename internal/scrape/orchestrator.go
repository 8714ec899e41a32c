// Package scrape drives one browser session across a list of profile
// targets and persists the extracted records.
package scrape

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/lead-miners/prospect/internal/browser"
	"github.com/lead-miners/prospect/internal/creds"
	"github.com/lead-miners/prospect/internal/extract"
	"github.com/lead-miners/prospect/internal/output"
)

// ErrorMarker fills the display_name column of a record whose fetch failed.
const ErrorMarker = "ERROR"

// Record is one row of extracted (or error) data for a target.
type Record struct {
	Address     string
	DisplayName string
	Headline    string
	Location    string
	Summary     string
}

// Result is the outcome of a full run: the ordered record table plus counts
// for the run summary. len(Records) always equals the number of targets.
type Result struct {
	Records   []Record
	Attempted int
	Succeeded int
	Failed    int
}

// Driver is the session surface the orchestrator drives. *browser.Session
// implements it; tests substitute fakes.
type Driver interface {
	Login(ctx context.Context, c creds.Credentials) error
	Fetch(ctx context.Context, target string) (string, error)
	Close() error
}

// OpenFunc opens a session driver. The indirection keeps browser launch out
// of orchestrator tests.
type OpenFunc func(cfg browser.Config) (Driver, error)

// DefaultOpen opens a real chromedp-backed session.
func DefaultOpen(cfg browser.Config) (Driver, error) {
	return browser.Open(cfg, nil)
}

// Config holds the orchestrator's own knobs; browser launch settings travel
// separately in browser.Config.
type Config struct {
	OutputPath     string
	ArchiveDir     string
	ScriptFallback bool
	Progress       bool
}

// Orchestrator owns the scrape loop. The single session handle it opens is
// never shared; processing is strictly sequential in target order.
type Orchestrator struct {
	cfg     Config
	browser browser.Config
	open    OpenFunc
	table   extract.SelectorTable
}

// New creates an Orchestrator. A nil open falls back to DefaultOpen; an
// empty selector table falls back to the shipped defaults.
func New(cfg Config, bcfg browser.Config, table extract.SelectorTable, open OpenFunc) *Orchestrator {
	if open == nil {
		open = DefaultOpen
	}
	if len(table.DisplayName) == 0 && len(table.Headline) == 0 &&
		len(table.Location) == 0 && len(table.Summary) == 0 {
		table = extract.DefaultSelectors()
	}
	return &Orchestrator{
		cfg:     cfg,
		browser: bcfg,
		open:    open,
		table:   table,
	}
}

// Run processes every target exactly once, in order, and persists the full
// record table afterwards. Per-target failures become error records and the
// loop continues; only session launch and final persistence are fatal.
// Empty target lists skip the session entirely but still write a headered
// output file.
func (o *Orchestrator) Run(ctx context.Context, targets []string, c *creds.Credentials) (*Result, error) {
	res := &Result{Records: make([]Record, 0, len(targets))}

	if len(targets) == 0 {
		log.Info().Msg("No targets to scrape")
		return res, o.persist(res)
	}

	drv, err := o.open(o.browser)
	if err != nil {
		// *browser.LaunchError: fatal before any target is processed.
		return nil, err
	}
	defer drv.Close()

	if c != nil {
		if err := drv.Login(ctx, *c); err != nil {
			// Recoverable by contract: later fetches may return
			// login-walled markup, which extraction reduces to sentinels.
			log.Warn().Err(err).Msg("Login failed, continuing unauthenticated")
		}
	}

	bar := o.newProgress(len(targets))

	for i, target := range targets {
		res.Attempted++
		log.Info().Int("n", i+1).Int("total", len(targets)).Str("url", target).Msg("Visiting target")

		html, err := drv.Fetch(ctx, target)
		if err != nil {
			res.Records = append(res.Records, errorRecord(target, err))
			res.Failed++
			log.Warn().Err(err).Str("url", target).Msg("Fetch failed, recording error row")
			advance(bar)
			continue
		}

		fields := extract.Extract(html, o.table)
		if o.cfg.ScriptFallback {
			fields = extract.ScriptFields(html, fields)
		}

		res.Records = append(res.Records, Record{
			Address:     target,
			DisplayName: fields.DisplayName,
			Headline:    fields.Headline,
			Location:    fields.Location,
			Summary:     fields.Summary,
		})
		res.Succeeded++

		if o.cfg.ArchiveDir != "" {
			if _, err := output.ArchivePage(o.cfg.ArchiveDir, target, html); err != nil {
				log.Warn().Err(err).Str("url", target).Msg("Failed to archive page")
			}
		}

		advance(bar)
	}

	return res, o.persist(res)
}

// persist writes the record table, overwriting any prior file. Failures are
// *output.PersistenceError; in-memory results in res remain valid.
func (o *Orchestrator) persist(res *Result) error {
	rows := make([][]string, 0, len(res.Records))
	for _, r := range res.Records {
		rows = append(rows, []string{r.Address, r.DisplayName, r.Headline, r.Location, r.Summary})
	}
	if err := o.cfg.writeRows(rows); err != nil {
		return err
	}
	log.Info().Int("records", len(rows)).Str("file", o.cfg.OutputPath).Msg("Results persisted")
	return nil
}

func (c Config) writeRows(rows [][]string) error {
	return output.WriteCSV(c.OutputPath, rows)
}

// errorRecord converts a per-target fetch failure into its record: the
// error marker as display name, the cause message in the headline column,
// sentinels elsewhere.
func errorRecord(target string, err error) Record {
	msg := err.Error()
	var nav *browser.NavigationError
	if errors.As(err, &nav) && nav.Err != nil {
		msg = nav.Err.Error()
	}
	return Record{
		Address:     target,
		DisplayName: ErrorMarker,
		Headline:    msg,
		Location:    extract.Unknown,
		Summary:     extract.Unknown,
	}
}

func (o *Orchestrator) newProgress(total int) *progressbar.ProgressBar {
	if !o.cfg.Progress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
