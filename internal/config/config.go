package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/headlines/internal/guardian"
	"github.com/matheuskafuri/headlines/internal/logging"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Config holds the user's search preferences. Environment variables win
// over the file.
type Config struct {
	Keyword  string `yaml:"keyword"   env:"HEADLINES_KEYWORD"`
	OrderBy  string `yaml:"order_by"  env:"HEADLINES_ORDER_BY"`
	APIKey   string `yaml:"api_key"   env:"GUARDIAN_API_KEY"`
	Endpoint string `yaml:"endpoint"  env:"HEADLINES_ENDPOINT"`
	LogLevel string `yaml:"log_level" env:"HEADLINES_LOG_LEVEL"`
}

// Query returns the search described by the current preferences.
func (c *Config) Query() guardian.Query {
	return guardian.Query{
		Keyword: c.Keyword,
		OrderBy: c.SortOrder(),
		APIKey:  c.APIKey,
	}
}

// SortOrder falls back to newest for an unknown token.
func (c *Config) SortOrder() guardian.SortOrder {
	o, err := guardian.ParseSortOrder(c.OrderBy)
	if err != nil {
		return guardian.OrderNewest
	}
	return o
}

func (c *Config) EndpointURL() string {
	if c.Endpoint == "" {
		return guardian.DefaultEndpoint
	}
	return c.Endpoint
}

// MaskedAPIKey keeps the last four characters visible.
func (c *Config) MaskedAPIKey() string {
	n := len(c.APIKey)
	switch {
	case n == 0:
		return "(unset)"
	case n <= 4:
		return "****"
	default:
		return "****" + c.APIKey[n-4:]
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "headlines", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv reads KEY=value pairs from path into the environment. A
// missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the config file at path (the XDG default when empty), fills
// gaps from the embedded defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile is Load without the environment, so that saving preferences
// never persists values that only came from env vars.
func readFile(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: write defaults, failing that just use them
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	mergeDefaults(&cfg, defaults)
	return &cfg, nil
}

// Update applies fn to the preferences stored at path and writes them back.
func Update(path string, fn func(*Config)) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	fn(cfg)
	return Save(path, cfg)
}

// mergeDefaults fills empty fields of cfg. Keyword is left alone: an empty
// keyword is a legitimate search.
func mergeDefaults(cfg, defaults *Config) {
	if cfg.OrderBy == "" {
		cfg.OrderBy = defaults.OrderBy
	}
	if cfg.APIKey == "" {
		cfg.APIKey = defaults.APIKey
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
}

// Save writes the preferences to path.
func Save(path string, cfg *Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return fmt.Errorf("reading embedded config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func validate(cfg *Config) error {
	if _, err := guardian.ParseSortOrder(cfg.OrderBy); err != nil {
		return fmt.Errorf("order_by: %w", err)
	}
	if cfg.Endpoint != "" {
		u, err := url.Parse(cfg.Endpoint)
		if err != nil {
			return fmt.Errorf("endpoint: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint: url scheme must be http or https, got %q", u.Scheme)
		}
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
