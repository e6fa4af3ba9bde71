package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// Config is the whole application configuration
type Config struct {
	Brand   BrandConfig   `yaml:"brand" json:"brand"`
	Pricing PricingConfig `yaml:"pricing" json:"pricing"`
	Deck    DeckConfig    `yaml:"deck" json:"deck"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Share   ShareConfig   `yaml:"share" json:"share"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// BrandConfig holds the product names printed on slides and reports
type BrandConfig struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	Site    string `yaml:"site" json:"site"`
	Sender  string `yaml:"sender" json:"sender"` // greeting name in share messages
}

// PricingConfig lists the plans offered by the calculator
type PricingConfig struct {
	DefaultTier string        `yaml:"default_tier" json:"default_tier"`
	Tiers       []PricingTier `yaml:"tiers" json:"tiers"`
}

// DeckConfig controls page turning
type DeckConfig struct {
	SettleDelayMS int         `yaml:"settle_delay_ms" json:"settle_delay_ms"`
	SlidesFile    string      `yaml:"slides_file" json:"slides_file"`
	AssetsDir     string      `yaml:"assets_dir" json:"assets_dir"`
	Keys          KeyBindings `yaml:"keys" json:"keys"`
}

// SettleDelay returns the configured delay as a duration
func (d DeckConfig) SettleDelay() time.Duration {
	return time.Duration(d.SettleDelayMS) * time.Millisecond
}

// StorageConfig selects where saved records live
type StorageConfig struct {
	Backend string      `yaml:"backend" json:"backend"` // file | memory | redis
	Path    string      `yaml:"path" json:"path"`
	Key     string      `yaml:"key" json:"key"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig is used by the redis storage backend
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"-"`
	DB       int    `yaml:"db" json:"db"`
}

// ShareConfig builds outbound share links
type ShareConfig struct {
	ServiceURL  string `yaml:"service_url" json:"service_url"`
	CountryCode string `yaml:"country_code" json:"country_code"`
}

// ReportConfig controls report output
type ReportConfig struct {
	Format        string `yaml:"format" json:"format"` // pdf | html
	CurrencyLabel string `yaml:"currency_label" json:"currency_label"`
	ExportDir     string `yaml:"export_dir" json:"export_dir"`
}

// LoggingConfig selects the zap level and encoder
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// ServerConfig is the local web host address
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Storage backends
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LoadDefaultConfig returns the configuration compiled into the binary
func LoadDefaultConfig() (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfig reads filename over the built-in defaults. A missing file
// returns an error satisfying os.IsNotExist; callers fall back to
// LoadDefaultConfig in that case.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return config, nil
}

// LoadConfigWithEnv loads filename (or the defaults when it does not exist),
// applies .env and SAVINGSDECK_* overrides and validates the result.
func LoadConfigWithEnv(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if errors.Is(err, os.ErrNotExist) {
		config, err = LoadDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	// a missing .env is normal
	_ = godotenv.Load()
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("SAVINGSDECK_STORAGE_BACKEND", &c.Storage.Backend)
	str("SAVINGSDECK_STORAGE_PATH", &c.Storage.Path)
	str("SAVINGSDECK_STORAGE_KEY", &c.Storage.Key)
	str("SAVINGSDECK_REDIS_ADDR", &c.Storage.Redis.Addr)
	str("SAVINGSDECK_REDIS_PASSWORD", &c.Storage.Redis.Password)
	str("SAVINGSDECK_LOG_LEVEL", &c.Logging.Level)
	str("SAVINGSDECK_LOG_FORMAT", &c.Logging.Format)
	str("SAVINGSDECK_SERVER_ADDR", &c.Server.Addr)
	str("SAVINGSDECK_SHARE_COUNTRY_CODE", &c.Share.CountryCode)
	str("SAVINGSDECK_EXPORT_DIR", &c.Report.ExportDir)
	str("SAVINGSDECK_REPORT_FORMAT", &c.Report.Format)

	if v, ok := lookup("SAVINGSDECK_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SAVINGSDECK_REDIS_DB: %w", err)
		}
		c.Storage.Redis.DB = db
	}
	return nil
}

// Validate checks settings that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if len(c.Pricing.Tiers) == 0 {
		return errors.New("pricing.tiers must list at least one plan")
	}
	seen := make(map[string]bool, len(c.Pricing.Tiers))
	for _, t := range c.Pricing.Tiers {
		if t.Name == "" {
			return errors.New("pricing.tiers: plan without a name")
		}
		if seen[t.Name] {
			return fmt.Errorf("pricing.tiers: duplicate plan %q", t.Name)
		}
		seen[t.Name] = true
	}
	if c.Pricing.DefaultTier != "" && !seen[c.Pricing.DefaultTier] {
		return fmt.Errorf("pricing.default_tier %q is not a listed plan", c.Pricing.DefaultTier)
	}
	if c.Deck.SettleDelayMS <= 0 {
		return errors.New("deck.settle_delay_ms must be positive")
	}
	if _, err := RendererFor(c.Report.Format); err != nil {
		return fmt.Errorf("report.format: %w", err)
	}
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the file backend")
		}
	case BackendMemory:
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// TierSet returns the configured plans
func (c *Config) TierSet() TierSet {
	return TierSet(c.Pricing.Tiers)
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	header := []byte("# Savings Deck Configuration\n# Generated - feel free to edit manually\n\n")
	return os.WriteFile(filename, append(header, data...), 0644)
}
