// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lead-miners/prospect/internal/browser"
	"github.com/lead-miners/prospect/internal/config"
	"github.com/lead-miners/prospect/internal/generate"
	"github.com/lead-miners/prospect/internal/identity"
	"github.com/lead-miners/prospect/internal/ratelimit"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Identities  *identity.Provider
	Proxies     *identity.ProxyPool
	RateLimiter ratelimit.Limiter
	Generator   generate.Generator
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging, the user-agent provider, the per-domain rate
// limiter, and the generation client. If any step fails, an error is
// returned and no resources are allocated.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.ErrorLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	identities, err := identity.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}

	var proxies *identity.ProxyPool
	if cfg.Proxy != "" {
		proxies = identity.NewProxyPool([]string{cfg.Proxy})
	}

	rateLimiter := ratelimit.NewDomainLimiter(cfg.FetchRateRPS, cfg.FetchRateBurst)
	logger.Debug().
		Float64("rps", cfg.FetchRateRPS).
		Int("burst", cfg.FetchRateBurst).
		Msg("Rate limiter initialized")

	httpClient := &http.Client{Timeout: 2 * time.Minute}
	generator := generate.NewClient(httpClient, cfg.GenBaseURL, cfg.GenAPIKey, cfg.GenModel)

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Identities:  identities,
		Proxies:     proxies,
		RateLimiter: rateLimiter,
		Generator:   generator,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// BrowserConfig assembles a browser session config from the application
// config, picking a fresh user agent and proxy for this session.
func (a *Application) BrowserConfig() browser.Config {
	ua := a.Config.UserAgent
	if ua == "" {
		ua = a.Identities.Next().UserAgent
	}

	proxy := ""
	if a.Proxies != nil {
		proxy = a.Proxies.GetNext()
	}

	return browser.Config{
		Headless:     a.Config.Headless,
		WindowWidth:  a.Config.WindowWidth,
		WindowHeight: a.Config.WindowHeight,
		UserAgent:    ua,
		Proxy:        proxy,
		ChromePath:   a.Config.ChromePath,
		LoginURL:     a.Config.LoginURL,
		NavTimeout:   a.Config.NavTimeout,
		SettleMin:    a.Config.SettleMin,
		SettleMax:    a.Config.SettleMax,
	}
}

// Close gracefully shuts down the application.
func (a *Application) Close() error {
	uptime := time.Since(a.startTime)
	a.Logger.Debug().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
