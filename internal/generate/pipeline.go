package generate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mazen160/go-random"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// TitleResult reports the outcome for one title to an optional observer
// (the web front end uses this for per-title previews).
type TitleResult struct {
	Title   string
	Path    string
	Content string
	Err     error
}

// Summary is the run outcome reported to the caller. A failed title has no
// output artifact but is still counted and listed here.
type Summary struct {
	Attempted    int
	Succeeded    int
	Failed       int
	FailedTitles []string
}

// PipelineConfig holds the generation loop's knobs.
type PipelineConfig struct {
	OutputDir string

	// SleepMin/SleepMax bound the randomized pause between titles.
	SleepMin time.Duration
	SleepMax time.Duration

	Progress bool
}

// Pipeline runs the title list through the generator and saves each article
// as a markdown file.
type Pipeline struct {
	gen Generator
	cfg PipelineConfig

	// OnResult, when set, observes every per-title outcome.
	OnResult func(TitleResult)
}

// NewPipeline creates a Pipeline around the given generator.
func NewPipeline(gen Generator, cfg PipelineConfig) *Pipeline {
	return &Pipeline{gen: gen, cfg: cfg}
}

// Run generates one article per title, in order. A failed title is logged,
// counted, and skipped; it never interrupts the loop.
func (p *Pipeline) Run(ctx context.Context, titles []string) (*Summary, error) {
	sum := &Summary{}
	if len(titles) == 0 {
		log.Info().Msg("No titles to generate")
		return sum, nil
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if p.cfg.Progress {
		bar = progressbar.NewOptions(len(titles),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i, title := range titles {
		sum.Attempted++
		log.Info().Int("n", i+1).Int("total", len(titles)).Str("title", title).Msg("Generating article")

		text, err := p.gen.Generate(ctx, BuildPrompt(title))
		if err == nil {
			var path string
			path, err = p.save(title, text)
			if err == nil {
				sum.Succeeded++
				p.report(TitleResult{Title: title, Path: path, Content: text})
			}
		}
		if err != nil {
			genErr := &GenerationError{Title: title, Err: err}
			log.Warn().Err(genErr).Str("title", title).Msg("Generation failed, skipping title")
			sum.Failed++
			sum.FailedTitles = append(sum.FailedTitles, title)
			p.report(TitleResult{Title: title, Err: genErr})
		}

		if bar != nil {
			_ = bar.Add(1)
		}
		if i < len(titles)-1 {
			p.pause(ctx)
		}
	}

	return sum, nil
}

// save writes the article as markdown named after the title slug.
func (p *Pipeline) save(title, text string) (string, error) {
	path := filepath.Join(p.cfg.OutputDir, slugify(title)+".md")
	content := fmt.Sprintf("# %s\n\n%s", title, text)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	log.Debug().Str("file", path).Msg("Article saved")
	return path, nil
}

func (p *Pipeline) report(r TitleResult) {
	if p.OnResult != nil {
		p.OnResult(r)
	}
}

// pause sleeps a uniform random interval from [SleepMin, SleepMax], bailing
// out early if the context ends.
func (p *Pipeline) pause(ctx context.Context) {
	min, max := p.cfg.SleepMin, p.cfg.SleepMax
	d := min
	if max > min {
		spread := int(max-min) / int(time.Millisecond)
		if n, err := random.IntRange(0, spread); err == nil {
			d = min + time.Duration(n)*time.Millisecond
		}
	}
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// slugify converts a title to a filesystem-safe file stem.
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		s = "untitled"
	}
	return s
}

// LoadTitles reads one title per line from path. Blank lines are ignored.
func LoadTitles(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open titles file: %w", err)
	}
	defer file.Close()

	var titles []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read titles file: %w", err)
	}

	return titles, nil
}
