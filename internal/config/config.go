package config

import "strings"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig selects the HTTP response cache backend.
type CacheConfig struct {
	Driver string `mapstructure:"driver"` // memory, redis or none
}

// HackerNewsConfig controls the Hacker News source.
type HackerNewsConfig struct {
	BaseAPI     string `mapstructure:"base_api"`
	WebURL      string `mapstructure:"web_url"`
	Limit       int    `mapstructure:"limit"`
	Concurrency int    `mapstructure:"concurrency"`
	MaxAge      string `mapstructure:"max_age"` // duration string, e.g., "5m"
	Timeout     string `mapstructure:"timeout"`
}

// SlashdotConfig controls the Slashdot source.
type SlashdotConfig struct {
	FeedURL string `mapstructure:"feed_url"`
	MaxAge  string `mapstructure:"max_age"`
	Timeout string `mapstructure:"timeout"`
}

// DataSources groups available feeds.
type DataSources struct {
	HN       HackerNewsConfig `mapstructure:"hackernews"`
	Slashdot SlashdotConfig   `mapstructure:"slashdot"`
}

// OpenAIConfig configures the summarizer behind long-press.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LinksConfig controls how clicked links are opened.
type LinksConfig struct {
	Mode string `mapstructure:"mode"` // print or browser
}

// ServerConfig controls the HTTP API and cache warmer.
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	WarmInterval string `mapstructure:"warm_interval"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig    `mapstructure:"app"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Sources DataSources  `mapstructure:"sources"`
	OpenAI  OpenAIConfig `mapstructure:"openai"`
	Links   LinksConfig  `mapstructure:"links"`
	Server  ServerConfig `mapstructure:"server"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}

	hn := &c.Sources.HN
	if hn.BaseAPI == "" {
		hn.BaseAPI = "https://hacker-news.firebaseio.com/v0"
	}
	if hn.WebURL == "" {
		hn.WebURL = "https://news.ycombinator.com"
	}
	if hn.Limit <= 0 {
		hn.Limit = 50
	}
	if hn.Concurrency <= 0 {
		hn.Concurrency = hn.Limit
	}
	if hn.MaxAge == "" {
		hn.MaxAge = "5m"
	}
	if hn.Timeout == "" {
		hn.Timeout = "10s"
	}

	sd := &c.Sources.Slashdot
	if sd.FeedURL == "" {
		sd.FeedURL = "https://rss.slashdot.org/Slashdot/slashdotMainatom"
	}
	if sd.MaxAge == "" {
		sd.MaxAge = "30m"
	}
	if sd.Timeout == "" {
		sd.Timeout = "20s"
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}

	c.Links.Mode = strings.ToLower(strings.TrimSpace(c.Links.Mode))
	if c.Links.Mode == "" {
		c.Links.Mode = "print"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.WarmInterval == "" {
		c.Server.WarmInterval = "5m"
	}
}
