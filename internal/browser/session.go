// Package browser owns a single browser-automation session: launch,
// optional authenticated login, sequential navigation, and teardown.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/mazen160/go-random"
	"github.com/rs/zerolog/log"

	"github.com/lead-miners/prospect/internal/creds"
	"github.com/lead-miners/prospect/internal/ratelimit"
)

// Config governs browser launch and navigation behavior. It is built once at
// startup and read-only for the session's lifetime.
type Config struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
	UserAgent    string
	Proxy        string
	ChromePath   string

	// LoginURL is the fixed address of the site's login form.
	LoginURL string

	// NavTimeout bounds a single navigation, not the overall run.
	NavTimeout time.Duration

	// SettleMin/SettleMax bound the randomized post-navigation wait that
	// paces requests and lets asynchronous rendering finish.
	SettleMin time.Duration
	SettleMax time.Duration
}

// loginSettle is the fixed wait after submitting the login form.
const loginSettle = 3 * time.Second

type state int

const (
	stateOpen state = iota
	stateLoggedIn
	stateClosed
)

// Session is one live browser-automation instance. It is owned by a single
// caller for its whole lifetime; methods are not safe for concurrent use.
type Session struct {
	cfg     Config
	limiter ratelimit.Limiter

	allocCtx    context.Context
	allocStop   context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc

	state state
}

// Open launches a fresh browser instance with the given configuration.
// A browser that cannot start is a *LaunchError, fatal for the whole run.
// The limiter may be nil to disable per-domain pacing.
func Open(cfg Config, limiter ratelimit.Limiter) (*Session, error) {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 30 * time.Second
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		cfg.WindowWidth, cfg.WindowHeight = 1920, 1080
	}

	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	}

	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if cfg.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if cfg.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(cfg.Proxy))
	}

	allocCtx, allocStop := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserStop := chromedp.NewContext(allocCtx)

	// Warm up so launch failures surface here, not on the first target.
	warmCtx, cancel := context.WithTimeout(browserCtx, cfg.NavTimeout)
	defer cancel()
	if err := chromedp.Run(warmCtx, chromedp.Navigate("about:blank")); err != nil {
		browserStop()
		allocStop()
		return nil, &LaunchError{Err: err}
	}

	log.Info().
		Bool("headless", cfg.Headless).
		Str("user_agent", cfg.UserAgent).
		Msg("Browser session ready")

	return &Session{
		cfg:         cfg,
		limiter:     limiter,
		allocCtx:    allocCtx,
		allocStop:   allocStop,
		browserCtx:  browserCtx,
		browserStop: browserStop,
		state:       stateOpen,
	}, nil
}

// Login navigates to the configured login address, fills the username and
// password inputs, submits them, and waits a fixed settle interval.
// Empty credentials make it a no-op. Any failure is a *LoginError; callers
// log it and proceed unauthenticated.
func (s *Session) Login(ctx context.Context, c creds.Credentials) error {
	s.mustBeOpen("Login")

	if c.Username == "" || c.Password == "" {
		log.Debug().Msg("No credentials configured, skipping login")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &LoginError{Err: err}
	}

	log.Info().Str("url", s.cfg.LoginURL).Msg("Logging in")

	runCtx, cancel := context.WithTimeout(s.browserCtx, s.cfg.NavTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(s.cfg.LoginURL),
		chromedp.WaitVisible(`#username`, chromedp.ByQuery),
		chromedp.SendKeys(`#username`, c.Username, chromedp.ByQuery),
		chromedp.SendKeys(`#password`, c.Password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(loginSettle),
	)
	if err != nil {
		return &LoginError{Err: err}
	}

	s.state = stateLoggedIn
	log.Info().Msg("Login submitted")
	return nil
}

// Fetch navigates to the target, waits the randomized settle interval, and
// returns the rendered document source. Failures are *NavigationError,
// scoped to this one target.
func (s *Session) Fetch(ctx context.Context, target string) (string, error) {
	s.mustBeOpen("Fetch")

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, target); err != nil {
			return "", &NavigationError{Target: target, Err: err}
		}
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(s.browserCtx, s.cfg.NavTimeout+s.cfg.SettleMax)
	defer cancel()

	var status int64
	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument && resp.Response.URL == target {
				status = resp.Response.Status
			}
		}
	})

	var html string
	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(target),
		chromedp.Sleep(s.settleInterval()),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", &NavigationError{Target: target, Err: err}
	}

	log.Debug().
		Str("url", target).
		Int64("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch completed")

	return html, nil
}

// Close releases all browser resources. It is idempotent so deferred and
// explicit calls cannot double-release.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	s.browserStop()
	s.allocStop()

	log.Info().Msg("Browser session closed")
	return nil
}

// settleInterval draws a uniform wait from [SettleMin, SettleMax].
func (s *Session) settleInterval() time.Duration {
	min, max := s.cfg.SettleMin, s.cfg.SettleMax
	if max <= min {
		return min
	}
	spread := int(max-min) / int(time.Millisecond)
	n, err := random.IntRange(0, spread)
	if err != nil {
		return min
	}
	return min + time.Duration(n)*time.Millisecond
}

// mustBeOpen guards against use after Close, which is a programming-contract
// violation rather than a recoverable error.
func (s *Session) mustBeOpen(op string) {
	if s.state == stateClosed {
		panic(fmt.Sprintf("browser: %s called on closed session", op))
	}
}
