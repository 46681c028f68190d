// Package config provides configuration loading and validation for the
// CLI and server. Values come from a YAML file, overridden by ATS_*
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration tree.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Browser       BrowserConfig       `mapstructure:"browser"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Scoring       ScoringConfig       `mapstructure:"scoring"`
	Search        SearchDefaults      `mapstructure:"search"`
	Server        ServerConfig        `mapstructure:"server"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	ProfilePath string `mapstructure:"profile_path"`
	OutputDir   string `mapstructure:"output_dir"`
	Template    string `mapstructure:"template"`
	Debug       bool   `mapstructure:"debug"`
	JSONLogs    bool   `mapstructure:"json_logs"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// LLMConfig selects and configures the answer-generation provider.
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "gemini" or "stub"
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// BrowserConfig controls the headless browser used for portal fetching.
type BrowserConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Headless bool          `mapstructure:"headless"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// NotificationsConfig enables notification channels.
type NotificationsConfig struct {
	Console bool   `mapstructure:"console"`
	Email   string `mapstructure:"email"`
}

// ScoringConfig holds pipeline scoring and selection limits.
type ScoringConfig struct {
	MinJobScore       float64 `mapstructure:"min_job_score"`
	MaxSkills         int     `mapstructure:"max_skills"`
	MaxBulletsPerRole int     `mapstructure:"max_bullets_per_role"`
	MaxProjects       int     `mapstructure:"max_projects"`
}

// SearchDefaults seeds portal searches when the CLI gives no overrides.
type SearchDefaults struct {
	Keywords         []string `mapstructure:"keywords"`
	Location         string   `mapstructure:"location"`
	RemoteOnly       bool     `mapstructure:"remote_only"`
	ExperienceLevel  string   `mapstructure:"experience_level"`
	PostedWithinDays int      `mapstructure:"posted_within_days"`
	MaxResults       int      `mapstructure:"max_results"`
	Portals          []string `mapstructure:"portals"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from the given YAML file (optional) and the
// environment. Env vars use the ATS_ prefix with underscores, e.g.
// ATS_DATABASE_URL overrides database.url.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so AutomaticEnv can bind it during
	// Unmarshal.
	v.SetDefault("app.profile_path", "profile.yaml")
	v.SetDefault("app.output_dir", "out")
	v.SetDefault("app.template", "classic")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.json_logs", false)
	v.SetDefault("database.url", "")
	v.SetDefault("llm.provider", "stub")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("browser.enabled", true)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.timeout", 30*time.Second)
	v.SetDefault("notifications.console", true)
	v.SetDefault("notifications.email", "")
	v.SetDefault("scoring.min_job_score", 30.0)
	v.SetDefault("scoring.max_skills", 12)
	v.SetDefault("scoring.max_bullets_per_role", 4)
	v.SetDefault("scoring.max_projects", 3)
	v.SetDefault("search.keywords", []string{})
	v.SetDefault("search.location", "")
	v.SetDefault("search.remote_only", false)
	v.SetDefault("search.experience_level", "")
	v.SetDefault("search.posted_within_days", 7)
	v.SetDefault("search.max_results", 25)
	v.SetDefault("search.portals", []string{"linkedin", "indeed"})
	v.SetDefault("server.addr", ":8080")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Scoring.MinJobScore < 0 || c.Scoring.MinJobScore > 100 {
		return fmt.Errorf("config error: 'scoring.min_job_score' must be in [0,100]")
	}
	if c.Scoring.MaxSkills < 0 {
		return fmt.Errorf("config error: 'scoring.max_skills' must be non-negative")
	}
	if c.Scoring.MaxBulletsPerRole < 0 {
		return fmt.Errorf("config error: 'scoring.max_bullets_per_role' must be non-negative")
	}
	if c.Scoring.MaxProjects < 0 {
		return fmt.Errorf("config error: 'scoring.max_projects' must be non-negative")
	}
	if c.Browser.Timeout < 0 {
		return fmt.Errorf("config error: 'browser.timeout' must be non-negative")
	}
	if c.LLM.Provider != "stub" && c.LLM.Provider != "gemini" {
		return fmt.Errorf("config error: 'llm.provider' must be \"stub\" or \"gemini\"")
	}
	return nil
}
