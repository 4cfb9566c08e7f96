package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultMaxStayDays          = 84
	defaultBankHolidaysURL      = "https://www.gov.uk/bank-holidays.json"
	defaultBankHolidaysDivision = "england-and-wales"
	defaultBankHolidaysCron     = "0 3 * * *"
	defaultDigestCron           = "0 6 1 * *"
	defaultRateLimitCooldown    = 5 * time.Second
	defaultRateLimitPerHour     = 120
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type ReportsConfig struct {
	// Bookings longer than this many nights need an overstay record.
	MaxStayDays int `yaml:"max_stay_days"`
}

type BankHolidaysConfig struct {
	Enabled     bool   `yaml:"enabled"`
	FeedURL     string `yaml:"feed_url"`
	Division    string `yaml:"division"`
	RefreshCron string `yaml:"refresh_cron"`
}

type DigestConfig struct {
	Enabled           bool     `yaml:"enabled"`
	Cron              string   `yaml:"cron"`
	Recipients        []string `yaml:"recipients"`
	ProbationRegionID *int64   `yaml:"probation_region_id,omitempty"`
	Service           string   `yaml:"service"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type RateLimitConfig struct {
	Cooldown   time.Duration `yaml:"cooldown"`
	MaxPerHour int           `yaml:"max_per_hour"`
	TrustProxy bool          `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database     DatabaseConfig     `yaml:"database"`
	Reports      ReportsConfig      `yaml:"reports"`
	BankHolidays BankHolidaysConfig `yaml:"bank_holidays"`
	Digest       DigestConfig       `yaml:"digest"`
	Email        EmailConfig        `yaml:"email"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Reports.MaxStayDays <= 0 {
		c.Reports.MaxStayDays = defaultMaxStayDays
	}
	if c.BankHolidays.FeedURL == "" {
		c.BankHolidays.FeedURL = defaultBankHolidaysURL
	}
	if c.BankHolidays.Division == "" {
		c.BankHolidays.Division = defaultBankHolidaysDivision
	}
	if c.BankHolidays.RefreshCron == "" {
		c.BankHolidays.RefreshCron = defaultBankHolidaysCron
	}
	if c.Digest.Cron == "" {
		c.Digest.Cron = defaultDigestCron
	}
	if c.RateLimit.Cooldown <= 0 {
		c.RateLimit.Cooldown = defaultRateLimitCooldown
	}
	if c.RateLimit.MaxPerHour <= 0 {
		c.RateLimit.MaxPerHour = defaultRateLimitPerHour
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.BankHolidays.Enabled {
		if err := validateCron(c.BankHolidays.RefreshCron); err != nil {
			return fmt.Errorf("bank holiday refresh cron: %w", err)
		}
	}

	if c.Digest.Enabled {
		if err := validateCron(c.Digest.Cron); err != nil {
			return fmt.Errorf("digest cron: %w", err)
		}
		if len(c.Digest.Recipients) == 0 {
			return fmt.Errorf("digest recipients are required when digest is enabled")
		}
		if c.Email.Region == "" || c.Email.Sender == "" {
			return fmt.Errorf("email region and sender are required when digest is enabled")
		}
	}

	return nil
}

// validateCron accepts the five-field expressions the scheduler runs.
func validateCron(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("expression is required")
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	return nil
}
