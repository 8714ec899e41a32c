package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	Headless     bool
	WindowWidth  int
	WindowHeight int
	ChromePath   string
	Proxy        string
	UserAgent    string
	NavTimeout   time.Duration
	SettleMin    time.Duration
	SettleMax    time.Duration
	LoginURL     string

	// Rate Limiting
	FetchRateRPS   float64
	FetchRateBurst int

	// Scraping
	TargetsFile    string
	OutputFile     string
	ArchiveDir     string
	ScriptFallback bool

	// Generation
	GenBaseURL  string
	GenAPIKey   string
	GenModel    string
	TitlesFile  string
	BlogDir     string
	GenSleepMin time.Duration
	GenSleepMax time.Duration

	// Web form
	ListenAddr string
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		Headless:       DefaultHeadless,
		WindowWidth:    DefaultWindowWidth,
		WindowHeight:   DefaultWindowHeight,
		NavTimeout:     DefaultNavTimeout,
		SettleMin:      DefaultSettleMin,
		SettleMax:      DefaultSettleMax,
		LoginURL:       DefaultLoginURL,
		FetchRateRPS:   DefaultFetchRateRPS,
		FetchRateBurst: DefaultFetchRateBurst,
		TargetsFile:    DefaultTargetsFile,
		OutputFile:     DefaultOutputFile,
		GenBaseURL:     DefaultGenBaseURL,
		GenModel:       DefaultGenModel,
		TitlesFile:     DefaultTitlesFile,
		BlogDir:        DefaultBlogDir,
		GenSleepMin:    DefaultGenSleepMin,
		GenSleepMax:    DefaultGenSleepMax,
		ListenAddr:     DefaultListenAddr,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("PROSPECT_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("PROSPECT_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("PROSPECT_LOGIN_URL"); v != "" {
		cfg.LoginURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GenAPIKey = v
	}
	if v := os.Getenv("PROSPECT_GEN_BASE_URL"); v != "" {
		cfg.GenBaseURL = v
	}
	if v := os.Getenv("PROSPECT_GEN_MODEL"); v != "" {
		cfg.GenModel = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		applyFlags(cfg, cmd)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyFlags(cfg *Config, cmd *cobra.Command) {
	flagString(cmd, "user-agent", &cfg.UserAgent)
	flagString(cmd, "proxy", &cfg.Proxy)
	flagString(cmd, "chrome-path", &cfg.ChromePath)
	flagString(cmd, "login-url", &cfg.LoginURL)
	flagString(cmd, "input", &cfg.TargetsFile)
	flagString(cmd, "output", &cfg.OutputFile)
	flagString(cmd, "archive-dir", &cfg.ArchiveDir)
	flagString(cmd, "titles", &cfg.TitlesFile)
	flagString(cmd, "blog-dir", &cfg.BlogDir)
	flagString(cmd, "model", &cfg.GenModel)
	flagString(cmd, "api-key", &cfg.GenAPIKey)
	flagString(cmd, "listen", &cfg.ListenAddr)
	flagDuration(cmd, "timeout", &cfg.NavTimeout)
	flagBool(cmd, "json", &cfg.JSONLog)
	flagBool(cmd, "script-fallback", &cfg.ScriptFallback)

	if f := cmd.Flags().Lookup("headless"); f != nil && f.Changed {
		cfg.Headless = f.Value.String() == "true"
	}
	if f := cmd.Flags().Lookup("rate"); f != nil && f.Changed {
		if r, err := strconv.ParseFloat(f.Value.String(), 64); err == nil {
			cfg.FetchRateRPS = r
		}
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
	if f := cmd.Flags().Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "error"
	}
}

func flagString(cmd *cobra.Command, name string, dst *string) {
	if f := cmd.Flags().Lookup(name); f != nil {
		if s := f.Value.String(); s != "" {
			*dst = s
		}
	}
}

func flagBool(cmd *cobra.Command, name string, dst *bool) {
	if f := cmd.Flags().Lookup(name); f != nil && f.Value.String() == "true" {
		*dst = true
	}
}

func flagDuration(cmd *cobra.Command, name string, dst *time.Duration) {
	if f := cmd.Flags().Lookup(name); f != nil {
		if s := f.Value.String(); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*dst = d
			}
		}
	}
}
