package scrape

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lead-miners/prospect/internal/browser"
	"github.com/lead-miners/prospect/internal/creds"
	"github.com/lead-miners/prospect/internal/extract"
)

// fakeDriver scripts fetch outcomes per target and counts lifecycle calls.
type fakeDriver struct {
	pages      map[string]string
	failures   map[string]error
	loginErr   error
	loginCalls int
	fetchCalls int
	closeCalls int
}

func (f *fakeDriver) Login(ctx context.Context, c creds.Credentials) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeDriver) Fetch(ctx context.Context, target string) (string, error) {
	f.fetchCalls++
	if err, ok := f.failures[target]; ok {
		return "", err
	}
	return f.pages[target], nil
}

func (f *fakeDriver) Close() error {
	f.closeCalls++
	return nil
}

func testOrchestrator(t *testing.T, drv *fakeDriver, opened *int) (*Orchestrator, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "profiles.csv")
	cfg := Config{OutputPath: out}
	table := extract.SelectorTable{
		DisplayName: []string{".name"},
		Headline:    []string{".headline"},
		Location:    []string{".location"},
		Summary:     []string{".summary"},
	}
	open := func(browser.Config) (Driver, error) {
		if opened != nil {
			*opened++
		}
		return drv, nil
	}
	return New(cfg, browser.Config{}, table, open), out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return records
}

func TestRun_MixedSuccessAndNavigationError(t *testing.T) {
	drv := &fakeDriver{
		pages: map[string]string{
			"https://example.com/a": `<html><body><h1 class="name">Jane Doe</h1></body></html>`,
		},
		failures: map[string]error{
			"https://example.com/b": &browser.NavigationError{
				Target: "https://example.com/b",
				Err:    errors.New("timeout"),
			},
		},
	}
	orch, out := testOrchestrator(t, drv, nil)

	targets := []string{"https://example.com/a", "https://example.com/b"}
	res, err := orch.Run(context.Background(), targets, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Records) != len(targets) {
		t.Fatalf("len(Records) = %d, want %d", len(res.Records), len(targets))
	}
	if res.Attempted != 2 || res.Succeeded != 1 || res.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", res.Attempted, res.Succeeded, res.Failed)
	}

	a := res.Records[0]
	if a.Address != "https://example.com/a" || a.DisplayName != "Jane Doe" {
		t.Errorf("Record a = %+v", a)
	}
	if a.Headline != extract.Unknown || a.Location != extract.Unknown || a.Summary != extract.Unknown {
		t.Errorf("Missing fields of record a should be sentinels: %+v", a)
	}

	b := res.Records[1]
	if b.DisplayName != ErrorMarker {
		t.Errorf("Record b display name = %q, want %q", b.DisplayName, ErrorMarker)
	}
	if !strings.Contains(b.Headline, "timeout") {
		t.Errorf("Record b headline = %q, want the error message embedded", b.Headline)
	}
	if b.Location != "unknown" || b.Summary != "unknown" {
		t.Errorf("Record b sentinels wrong: %+v", b)
	}

	records := readCSV(t, out)
	if len(records) != 3 {
		t.Fatalf("CSV rows = %d, want header + 2", len(records))
	}
	if records[2][1] != ErrorMarker {
		t.Errorf("Persisted error row = %v", records[2])
	}
}

func TestRun_EmptyTargets(t *testing.T) {
	drv := &fakeDriver{}
	opened := 0
	orch, out := testOrchestrator(t, drv, &opened)

	res, err := orch.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Records) != 0 {
		t.Errorf("Expected empty result table, got %d records", len(res.Records))
	}
	if opened != 0 {
		t.Errorf("Session was opened %d times for an empty target list", opened)
	}
	if drv.closeCalls != 0 {
		t.Errorf("Close called %d times without an open", drv.closeCalls)
	}

	records := readCSV(t, out)
	if len(records) != 1 {
		t.Fatalf("Expected headered empty file, got %d rows", len(records))
	}
	if strings.Join(records[0], ",") != "address,display_name,headline,location,summary" {
		t.Errorf("Header = %v", records[0])
	}
}

func TestRun_CloseExactlyOnceWhenAllFetchesFail(t *testing.T) {
	targets := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	failures := make(map[string]error, len(targets))
	for _, target := range targets {
		failures[target] = &browser.NavigationError{Target: target, Err: errors.New("dns failure")}
	}
	drv := &fakeDriver{failures: failures}
	opened := 0
	orch, _ := testOrchestrator(t, drv, &opened)

	res, err := orch.Run(context.Background(), targets, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if opened != 1 || drv.closeCalls != 1 {
		t.Errorf("open/close = %d/%d, want exactly 1/1", opened, drv.closeCalls)
	}
	if len(res.Records) != len(targets) || res.Failed != len(targets) {
		t.Errorf("Expected one error record per target: %+v", res)
	}
}

func TestRun_LoginFailureIsNotFatal(t *testing.T) {
	drv := &fakeDriver{
		pages:    map[string]string{"https://example.com/a": `<html><body><h1 class="name">Jane Doe</h1></body></html>`},
		loginErr: &browser.LoginError{Err: errors.New("element not found")},
	}
	orch, _ := testOrchestrator(t, drv, nil)

	c := &creds.Credentials{Username: "u", Password: "p"}
	res, err := orch.Run(context.Background(), []string{"https://example.com/a"}, c)
	if err != nil {
		t.Fatalf("Run failed despite recoverable login error: %v", err)
	}

	if drv.loginCalls != 1 {
		t.Errorf("Login called %d times, want 1", drv.loginCalls)
	}
	if res.Succeeded != 1 {
		t.Errorf("Run should proceed unauthenticated, got %+v", res)
	}
}

func TestRun_NoCredentialsSkipsLogin(t *testing.T) {
	drv := &fakeDriver{pages: map[string]string{"https://example.com/a": "<html></html>"}}
	orch, _ := testOrchestrator(t, drv, nil)

	if _, err := orch.Run(context.Background(), []string{"https://example.com/a"}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if drv.loginCalls != 0 {
		t.Errorf("Login called %d times with absent credentials", drv.loginCalls)
	}
}

func TestRun_LaunchErrorIsFatal(t *testing.T) {
	launchErr := &browser.LaunchError{Err: errors.New("chrome not found")}
	open := func(browser.Config) (Driver, error) {
		return nil, launchErr
	}
	orch := New(Config{OutputPath: filepath.Join(t.TempDir(), "out.csv")}, browser.Config{}, extract.SelectorTable{}, open)

	_, err := orch.Run(context.Background(), []string{"https://example.com/a"}, nil)

	var le *browser.LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *browser.LaunchError, got %v", err)
	}
}

func TestRun_PersistenceErrorSurfacesAfterProcessing(t *testing.T) {
	drv := &fakeDriver{pages: map[string]string{"https://example.com/a": "<html></html>"}}
	cfg := Config{OutputPath: filepath.Join(t.TempDir(), "no-such-dir", "out.csv")}
	orch := New(cfg, browser.Config{}, extract.SelectorTable{DisplayName: []string{".name"}},
		func(browser.Config) (Driver, error) { return drv, nil })

	res, err := orch.Run(context.Background(), []string{"https://example.com/a"}, nil)
	if err == nil {
		t.Fatal("Expected persistence error")
	}
	if res == nil || len(res.Records) != 1 {
		t.Error("In-memory results must survive a persistence failure")
	}
	if drv.closeCalls != 1 {
		t.Errorf("Close called %d times, want 1", drv.closeCalls)
	}
}

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://example.com/a\n\n  \nhttps://example.com/b\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := LoadTargets(path)
	if err != nil {
		t.Fatalf("LoadTargets failed: %v", err)
	}

	want := []string{"https://example.com/a", "https://example.com/b"}
	if len(targets) != len(want) {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("targets[%d] = %q, want %q", i, targets[i], want[i])
		}
	}
}

func TestLoadTargets_MissingFile(t *testing.T) {
	if _, err := LoadTargets(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected error for missing targets file")
	}
}
