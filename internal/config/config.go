package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	DataSource struct {
		MarketSuffixes []string `yaml:"market_suffixes"`
		DefaultPeriod  string   `yaml:"default_period"`
	} `yaml:"data_source"`
	Profile struct {
		Mode        string `yaml:"mode"` // "tick" or "fixed"
		BucketCount int    `yaml:"bucket_count"`
		TickStepCap int    `yaml:"tick_step_cap"`
		MinBars     int    `yaml:"min_bars"`
	} `yaml:"profile"`
	Indicators struct {
		MAWindows       []int   `yaml:"ma_windows"`
		BollingerWindow int     `yaml:"bollinger_window"`
		BollingerWidth  float64 `yaml:"bollinger_width"`
	} `yaml:"indicators"`
	Cache struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string   `yaml:"refresh_cron"`
		Watchlist   []string `yaml:"watchlist"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("PROFILE_MODE"); v != "" {
		cfg.Profile.Mode = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if len(cfg.DataSource.MarketSuffixes) == 0 {
		cfg.DataSource.MarketSuffixes = []string{".TW", ".TWO"}
	}
	if cfg.DataSource.DefaultPeriod == "" {
		cfg.DataSource.DefaultPeriod = "6mo"
	}
	if cfg.Profile.Mode == "" {
		cfg.Profile.Mode = "tick"
	}
	if cfg.Profile.BucketCount == 0 {
		cfg.Profile.BucketCount = 100
	}
	if cfg.Profile.TickStepCap == 0 {
		cfg.Profile.TickStepCap = 12000
	}
	if cfg.Profile.MinBars == 0 {
		cfg.Profile.MinBars = 20
	}
	if len(cfg.Indicators.MAWindows) == 0 {
		cfg.Indicators.MAWindows = []int{5, 20, 60}
	}
	if cfg.Indicators.BollingerWindow == 0 {
		cfg.Indicators.BollingerWindow = 20
	}
	if cfg.Indicators.BollingerWidth == 0 {
		cfg.Indicators.BollingerWidth = 2.0
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Schedule.RefreshCron == "" {
		// TWSE publishes final daily data shortly after the 13:30 close;
		// refresh at 14:30 on weekdays.
		cfg.Schedule.RefreshCron = "0 30 14 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Profile.Mode != "tick" && c.Profile.Mode != "fixed" {
		return fmt.Errorf("profile.mode must be \"tick\" or \"fixed\", got %q", c.Profile.Mode)
	}
	if c.Profile.BucketCount < 1 {
		return fmt.Errorf("profile.bucket_count must be positive")
	}
	if c.Profile.TickStepCap < 1 {
		return fmt.Errorf("profile.tick_step_cap must be positive")
	}
	if c.Profile.MinBars < 1 {
		return fmt.Errorf("profile.min_bars must be positive")
	}
	for _, w := range c.Indicators.MAWindows {
		if w < 1 {
			return fmt.Errorf("indicators.ma_windows entries must be positive, got %d", w)
		}
	}
	if c.Indicators.BollingerWindow < 2 {
		return fmt.Errorf("indicators.bollinger_window must be at least 2")
	}
	if c.Indicators.BollingerWidth <= 0 {
		return fmt.Errorf("indicators.bollinger_width must be positive")
	}
	if c.Cache.TTLMinutes < 1 {
		return fmt.Errorf("cache.ttl_minutes must be positive")
	}
	return nil
}
