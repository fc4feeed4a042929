package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/llm"
	"github.com/Veraticus/ledgercheck/internal/server"
	"github.com/Veraticus/ledgercheck/internal/storage"
)

// EnvPrefix prefixes every environment variable viper reads.
const EnvPrefix = "LEDGERCHECK"

// Config is the typed application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Security SecurityConfig `mapstructure:"security"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Server   ServerConfig   `mapstructure:"server"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig selects the record store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SecurityConfig holds the encryption-at-rest key.
type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

// LLMConfig configures model-backed recommendations.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	RequesterHeader string   `mapstructure:"requester_header"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	MaxUploadBytes  int64    `mapstructure:"max_upload_bytes"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.driver", storage.DriverSQLite)
	v.SetDefault("database.dsn", "~/.config/ledgercheck/ledgercheck.db")

	v.SetDefault("llm.provider", llm.ProviderOpenAI)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 150)
	v.SetDefault("llm.timeout", "15s")

	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.requester_header", server.DefaultRequesterHeader)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173", "*"})
	v.SetDefault("server.max_upload_bytes", server.DefaultMaxUploadBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names are accepted after the prefixed ones.
	_ = v.BindEnv("security.encryption_key", EnvPrefix+"_SECURITY_ENCRYPTION_KEY", "ENCRYPTION_KEY")
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY")
}

// providerKeyEnv names the conventional API key variable of each provider.
// It is read only for the configured provider, after llm.api_key.
var providerKeyEnv = map[string]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// LoadDotEnv loads variables from .env files without overriding the
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.DSN = ExpandPath(cfg.Database.DSN)

	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		if name, ok := providerKeyEnv[strings.ToLower(cfg.LLM.Provider)]; ok {
			cfg.LLM.APIKey = os.Getenv(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail far from their source.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	switch c.Database.Driver {
	case storage.DriverSQLite, storage.DriverPostgres:
	default:
		return fmt.Errorf("%w: database driver %q", common.ErrInvalidConfig, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("%w: database.dsn", common.ErrMissingConfig)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini:
	default:
		return fmt.Errorf("%w: llm provider %q", common.ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be positive", common.ErrInvalidConfig)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: server.max_upload_bytes must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// ClientConfig converts the LLM section for llm.NewClient.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		Provider:    c.Provider,
		APIKey:      c.APIKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		Timeout:     c.Timeout,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// Options converts the server section for server.New.
func (c ServerConfig) Options() server.Config {
	return server.Config{
		Addr:            c.Addr,
		RequesterHeader: c.RequesterHeader,
		AllowedOrigins:  c.AllowedOrigins,
		MaxUploadBytes:  c.MaxUploadBytes,
	}
}
