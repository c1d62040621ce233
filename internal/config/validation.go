package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("retries must be >= 1")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("pages cannot be negative")
	}
	if c.TotalPageLimit < 0 {
		return fmt.Errorf("page budget cannot be negative")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be >= 1")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be > 0")
	}
	return nil
}
