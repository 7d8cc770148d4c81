package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultDampingFactor = 0.85
	DefaultDepth         = 3
	DefaultLimit         = 10
	DefaultFormat        = "svg"
	DefaultPort          = "8080"
	DefaultConfigPath    = "config/config.toml"
)

type GitHubConfig struct {
	Token             string  `toml:"token"`
	Endpoint          string  `toml:"endpoint"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gte=0"`
	TimeoutSeconds    int     `toml:"timeout_seconds" validate:"gte=0"`

	// consecutive failed requests before calls to GitHub are suspended; 0 disables
	BreakerFailures       uint32 `toml:"breaker_failures"`
	BreakerTimeoutSeconds int    `toml:"breaker_timeout_seconds" validate:"gte=0"`
}

type RankConfig struct {
	DampingFactor float64 `toml:"damping_factor" validate:"gt=0,lt=1"`
	Depth         int     `toml:"depth" validate:"gte=0"`
	Limit         int     `toml:"limit" validate:"gte=1"`
	Classify      bool    `toml:"classify"`
}

type ClassifierConfig struct {
	Provider string `toml:"provider" validate:"oneof=keyword llm"`
	Top      int    `toml:"top" validate:"gte=1"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`

	MaxTokens int `toml:"max_tokens" validate:"gte=0"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type OutputConfig struct {
	Format string `toml:"format" validate:"oneof=json svg"`
	Path   string `toml:"path"`
}

type ServerConfig struct {
	Port    string `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

type LogConfig struct {
	Level       string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `toml:"development"`
}

type Config struct {
	GitHub     GitHubConfig     `toml:"github"`
	Rank       RankConfig       `toml:"rank"`
	Classifier ClassifierConfig `toml:"classifier"`
	LLM        LLMConfig        `toml:"llm"`
	Memgraph   MemgraphConfig   `toml:"memgraph"`
	Output     OutputConfig     `toml:"output"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

func Default() *Config {
	return &Config{
		Rank: RankConfig{
			DampingFactor: DefaultDampingFactor,
			Depth:         DefaultDepth,
			Limit:         DefaultLimit,
		},
		Classifier: ClassifierConfig{Provider: "keyword", Top: 4},
		Output:     OutputConfig{Format: DefaultFormat},
		Server:     ServerConfig{Port: DefaultPort},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of the defaults; keys absent from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	setString(&c.GitHub.Token, "GITHUB_TOKEN")
	setString(&c.GitHub.Endpoint, "GITHUB_GRAPHQL_URL")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.Metrics = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	return Check(c)
}
