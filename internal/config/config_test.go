package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheuskafuri/headlines/internal/guardian"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Keyword == "" {
		t.Error("expected a default keyword")
	}
	if cfg.OrderBy != "newest" {
		t.Errorf("expected default order newest, got %q", cfg.OrderBy)
	}
	if cfg.APIKey == "" {
		t.Error("expected a default api key")
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `keyword: Climate Change
order_by: relevance
api_key: my-key
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Keyword != "Climate Change" {
		t.Errorf("expected keyword from file, got %q", cfg.Keyword)
	}
	if cfg.SortOrder() != guardian.OrderRelevance {
		t.Errorf("expected relevance, got %s", cfg.SortOrder())
	}
	// Unset fields come from the embedded defaults
	if cfg.EndpointURL() != guardian.DefaultEndpoint {
		t.Errorf("expected default endpoint, got %s", cfg.EndpointURL())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadEmptyKeywordKept(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("keyword: \"\"\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Keyword != "" {
		t.Errorf("expected empty keyword to be kept, got %q", cfg.Keyword)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Keyword == "" {
		t.Error("expected default keyword when config doesn't exist")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults to be written: %v", err)
	}
}

func TestWriteDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := writeDefaults(cfgPath); err != nil {
		t.Fatalf("writeDefaults: %v", err)
	}
	got, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	want, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		t.Fatalf("reading embedded config: %v", err)
	}
	if len(got) == 0 || string(got) != string(want) {
		t.Errorf("written config differs from embedded defaults:\n%s", got)
	}
}

func TestWriteDefaultsReportsErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := writeDefaults(filepath.Join(blocker, "config.yaml")); err == nil {
		t.Error("expected error when the config dir cannot be created")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("keyword: tennis\napi_key: file-key\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("GUARDIAN_API_KEY", "env-key")
	t.Setenv("HEADLINES_ORDER_BY", "oldest")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("expected env api key, got %q", cfg.APIKey)
	}
	if cfg.OrderBy != "oldest" {
		t.Errorf("expected env order, got %q", cfg.OrderBy)
	}
	if cfg.Keyword != "tennis" {
		t.Errorf("expected file keyword, got %q", cfg.Keyword)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("HEADLINES_ORDER_BY", "popular")
	if _, err := Load(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("expected error for invalid order from env")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("HEADLINES_KEYWORD=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Setenv("HEADLINES_KEYWORD", "")
	os.Unsetenv("HEADLINES_KEYWORD")

	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("HEADLINES_KEYWORD"); got != "from-dotenv" {
		t.Errorf("expected keyword from .env, got %q", got)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Keyword: "brexit", OrderBy: "oldest", APIKey: "k", LogLevel: "debug"}

	if err := Save(cfgPath, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Keyword != "brexit" || got.OrderBy != "oldest" || got.LogLevel != "debug" {
		t.Errorf("unexpected reloaded config: %+v", got)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(cfgPath, &Config{OrderBy: "sideways"}); err == nil {
		t.Error("expected error saving invalid order")
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

func TestUpdateDoesNotPersistEnv(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("keyword: tennis\napi_key: file-key\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("GUARDIAN_API_KEY", "env-secret")

	err := Update(cfgPath, func(c *Config) {
		c.Keyword = "golf"
		c.OrderBy = "relevance"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if strings.Contains(string(data), "env-secret") {
		t.Error("env-only api key leaked into the config file")
	}
	if !strings.Contains(string(data), "keyword: golf") {
		t.Errorf("expected updated keyword, got:\n%s", data)
	}
}

func TestSortOrderFallback(t *testing.T) {
	cfg := &Config{OrderBy: "weird"}
	if cfg.SortOrder() != guardian.OrderNewest {
		t.Errorf("expected newest fallback, got %s", cfg.SortOrder())
	}
}

func TestQuery(t *testing.T) {
	cfg := &Config{Keyword: "Tour de France", OrderBy: "oldest", APIKey: "abc"}
	q := cfg.Query()
	if q.Keyword != "Tour de France" || q.OrderBy != guardian.OrderOldest || q.APIKey != "abc" {
		t.Errorf("unexpected query: %+v", q)
	}
}

func TestMaskedAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(unset)"},
		{"test", "****"},
		{"abcdef123456", "****3456"},
	}
	for _, tt := range tests {
		cfg := &Config{APIKey: tt.key}
		if got := cfg.MaskedAPIKey(); got != tt.want {
			t.Errorf("MaskedAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidateInvalidOrder(t *testing.T) {
	cfg := &Config{OrderBy: "popular"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestValidateInvalidEndpointScheme(t *testing.T) {
	cfg := &Config{OrderBy: "newest", Endpoint: "file:///etc/passwd"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// endpoint")
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := &Config{OrderBy: "newest", LogLevel: "loud"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestValidateAcceptsHTTP(t *testing.T) {
	cfg := &Config{OrderBy: "newest", Endpoint: "http://localhost:8080/search"}
	if err := validate(cfg); err != nil {
		t.Errorf("unexpected error for http endpoint: %v", err)
	}
}
