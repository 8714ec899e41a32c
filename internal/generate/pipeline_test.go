package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeGenerator fails titles listed in fail, echoes everything else.
type fakeGenerator struct {
	fail  map[string]error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	for title, err := range f.fail {
		if strings.Contains(prompt, title) {
			return "", err
		}
	}
	return "generated body", nil
}

func TestPipelineRun_SavesMarkdown(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(&fakeGenerator{}, PipelineConfig{OutputDir: dir})

	sum, err := p.Run(context.Background(), []string{"Go Generics Deep Dive"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.Attempted != 1 || sum.Succeeded != 1 || sum.Failed != 0 {
		t.Errorf("summary = %+v", sum)
	}

	data, err := os.ReadFile(filepath.Join(dir, "go_generics_deep_dive.md"))
	if err != nil {
		t.Fatalf("Article file missing: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "# Go Generics Deep Dive\n\n") {
		t.Errorf("Article missing title heading: %q", got)
	}
	if !strings.Contains(got, "generated body") {
		t.Errorf("Article missing body: %q", got)
	}
}

func TestPipelineRun_FailedTitleSkippedButCounted(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{fail: map[string]error{
		"Broken Title": errors.New("quota exceeded"),
	}}
	p := NewPipeline(gen, PipelineConfig{OutputDir: dir})

	var results []TitleResult
	p.OnResult = func(r TitleResult) { results = append(results, r) }

	titles := []string{"Broken Title", "Working Title"}
	sum, err := p.Run(context.Background(), titles)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Attempted != 2 || sum.Succeeded != 1 || sum.Failed != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.FailedTitles) != 1 || sum.FailedTitles[0] != "Broken Title" {
		t.Errorf("FailedTitles = %v", sum.FailedTitles)
	}

	// No artifact for the failed title
	if _, err := os.Stat(filepath.Join(dir, "broken_title.md")); !os.IsNotExist(err) {
		t.Error("Failed title should not produce an output file")
	}
	if _, err := os.Stat(filepath.Join(dir, "working_title.md")); err != nil {
		t.Errorf("Successful title missing its file: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("OnResult observed %d results, want 2", len(results))
	}
	var genErr *GenerationError
	if !errors.As(results[0].Err, &genErr) || genErr.Title != "Broken Title" {
		t.Errorf("First result should carry a *GenerationError for the title, got %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Content != "generated body" {
		t.Errorf("Second result = %+v", results[1])
	}
}

func TestPipelineRun_EmptyTitles(t *testing.T) {
	p := NewPipeline(&fakeGenerator{}, PipelineConfig{OutputDir: t.TempDir()})

	sum, err := p.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.Attempted != 0 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Go Generics Deep Dive":  "go_generics_deep_dive",
		"a/b testing in Go":      "a_b_testing_in_go",
		"":                       "untitled",
		strings.Repeat("long ", 20): strings.Repeat("long_", 10),
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadTitles_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	if err := os.WriteFile(path, []byte("First\n\n  \nSecond\n"), 0644); err != nil {
		t.Fatal(err)
	}

	titles, err := LoadTitles(path)
	if err != nil {
		t.Fatalf("LoadTitles failed: %v", err)
	}
	if len(titles) != 2 || titles[0] != "First" || titles[1] != "Second" {
		t.Errorf("titles = %v", titles)
	}
}
