package config

import "fmt"

func validate(c *Config) error {
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.SettleMin < 0 || c.SettleMax < c.SettleMin {
		return fmt.Errorf("settle interval must satisfy 0 <= min <= max")
	}
	if c.GenSleepMin < 0 || c.GenSleepMax < c.GenSleepMin {
		return fmt.Errorf("generation sleep interval must satisfy 0 <= min <= max")
	}
	if c.FetchRateRPS <= 0 {
		return fmt.Errorf("fetch rate must be > 0")
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be > 0")
	}
	return nil
}
