package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgercheck/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "ledgercheck.db", filepath.Base(cfg.Database.DSN))
	assert.NotContains(t, cfg.Database.DSN, "~")
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 150, cfg.LLM.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "X-Requester-ID", cfg.Server.RequesterHeader)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173", "*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Empty(t, cfg.Security.EncryptionKey)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LEDGERCHECK_DATABASE_DRIVER", "pgx")
	t.Setenv("LEDGERCHECK_DATABASE_DSN", "postgres://localhost/ledger")
	t.Setenv("LEDGERCHECK_LLM_TIMEOUT", "3s")
	t.Setenv("ENCRYPTION_KEY", "plain-key")
	t.Setenv("OPENAI_API_KEY", "sk-from-openai-var")
	t.Setenv("LEDGERCHECK_LLM_API_KEY", "")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/ledger", cfg.Database.DSN)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "plain-key", cfg.Security.EncryptionKey)
	assert.Equal(t, "sk-from-openai-var", cfg.LLM.APIKey)

	t.Setenv("LEDGERCHECK_SECURITY_ENCRYPTION_KEY", "prefixed-key")
	cfg, err = Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "prefixed-key", cfg.Security.EncryptionKey)
}

func TestLoad_ProviderAPIKey(t *testing.T) {
	tests := []struct {
		env      map[string]string
		provider string
		want     string
	}{
		{
			provider: "openai",
			env:      map[string]string{"OPENAI_API_KEY": "sk-openai-key", "GEMINI_API_KEY": "gemini-key-0123"},
			want:     "sk-openai-key",
		},
		{
			provider: "gemini",
			env:      map[string]string{"OPENAI_API_KEY": "sk-openai-key", "GEMINI_API_KEY": "gemini-key-0123"},
			want:     "gemini-key-0123",
		},
		{
			provider: "anthropic",
			env:      map[string]string{"OPENAI_API_KEY": "sk-openai-key", "ANTHROPIC_API_KEY": "sk-ant-key"},
			want:     "sk-ant-key",
		},
		{
			provider: "anthropic",
			env:      map[string]string{"OPENAI_API_KEY": "sk-openai-key"},
			want:     "",
		},
		{
			provider: "gemini",
			env:      map[string]string{"LEDGERCHECK_LLM_API_KEY": "explicit-key", "GEMINI_API_KEY": "gemini-key-0123"},
			want:     "explicit-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.want, func(t *testing.T) {
			for _, name := range []string{"LEDGERCHECK_LLM_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY"} {
				t.Setenv(name, "")
			}
			for name, value := range tt.env {
				t.Setenv(name, value)
			}
			t.Setenv("LEDGERCHECK_LLM_PROVIDER", tt.provider)

			cfg, err := Load(newViper())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LLM.APIKey)
			assert.Equal(t, tt.want, cfg.LLM.ClientConfig().APIKey)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: anthropic
  api_key: sk-ant-0123456789
server:
  addr: ":9000"
  allowed_origins:
    - https://app.example.com
`), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-0123456789", cfg.LLM.APIKey)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.Options().AllowedOrigins)
	assert.Equal(t, ":9000", cfg.Server.Options().Addr)

	client := cfg.LLM.ClientConfig()
	assert.Equal(t, "anthropic", client.Provider)
	assert.Equal(t, 15*time.Second, client.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{key: "logging.level", value: "loud"},
		{key: "logging.format", value: "xml"},
		{key: "database.driver", value: "mysql"},
		{key: "database.dsn", value: " "},
		{key: "llm.provider", value: "bard"},
		{key: "llm.timeout", value: "0s"},
		{key: "server.max_upload_bytes", value: 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.True(t,
				errorsIsAny(err, common.ErrInvalidConfig, common.ErrMissingConfig),
				"unexpected error: %v", err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEDGERCHECK_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("LEDGERCHECK_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LEDGERCHECK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("LEDGERCHECK_TEST_DOTENV"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGERCHECK_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/data/x.db", ExpandPath("$LEDGERCHECK_TEST_DIR/x.db"))
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
