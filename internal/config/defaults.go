package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	DefaultHeadless     = true
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 900
	DefaultNavTimeout   = 30 * time.Second
	DefaultSettleMin    = 3 * time.Second
	DefaultSettleMax    = 7 * time.Second
	DefaultLoginURL     = "https://www.linkedin.com/login"

	DefaultFetchRateRPS   = 0.5
	DefaultFetchRateBurst = 1

	DefaultTargetsFile = "profiles.txt"
	DefaultOutputFile  = "profiles.csv"

	DefaultGenBaseURL  = "https://generativelanguage.googleapis.com"
	DefaultGenModel    = "gemini-2.5-flash"
	DefaultTitlesFile  = "titles.txt"
	DefaultBlogDir     = "blog"
	DefaultGenSleepMin = 3 * time.Second
	DefaultGenSleepMax = 6 * time.Second

	DefaultListenAddr = ":8080"
)
