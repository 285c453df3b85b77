package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "server", cfg.Browser.Driver)
	assert.Equal(t, 10*time.Second, cfg.Pacing.Gmail.Load)
	assert.Equal(t, 500*time.Millisecond, cfg.Pacing.Gmail.Type)
	assert.Equal(t, 2*time.Second, cfg.Pacing.Outlook.Focus)
	assert.Equal(t, 200*time.Millisecond, cfg.Pacing.Replay.Field)
	assert.Equal(t, time.Second, cfg.Pacing.Replay.Add)
	assert.Equal(t, []string{"kimmonismus", "ai_for_success", "slow_developer"}, cfg.News.Accounts)
	assert.Equal(t, "ERP system", cfg.Orders.ErpTitle)
	assert.Equal(t, DefaultErpURL, cfg.Orders.ErpURL)
	assert.Equal(t, "3+4", cfg.Calc.Expression)
}

func TestLoad_SecretsFromUnprefixedEnv(t *testing.T) {
	t.Setenv(EnvAutomationKey, "sg-key")
	t.Setenv(EnvOpenAIKey, "sk-openai")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sg-key", cfg.Backend.APIKey)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAIKey)
	assert.Equal(t, "sk-openai", cfg.LLM.APIKey())
	require.NoError(t, cfg.Validate())
}

func TestLoad_PrefixedEnvOverride(t *testing.T) {
	t.Setenv("DESKTOP_RELAY_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("DESKTOP_RELAY_PACING_REPLAY_ADD", "250ms")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.Pacing.Replay.Add)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relay.yaml")
	yaml := `
llm:
  provider: gemini
  model: gemini-2.5-flash
orders:
  source: outlook
news:
  accounts: [sama]
  scrolls: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv(EnvGeminiKey, "g-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey())
	assert.Equal(t, "outlook", cfg.Orders.Source)
	assert.Equal(t, []string{"sama"}, cfg.News.Accounts)
	assert.Equal(t, 1, cfg.News.Scrolls)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewDefaultConfig()
		cfg.Backend.APIKey = "k"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Backend.APIKey = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAutomationKey)

	tests := map[string]func(*Config){
		"driver":      func(c *Config) { c.Browser.Driver = "selenium" },
		"provider":    func(c *Config) { c.LLM.Provider = "llama" },
		"image scale": func(c *Config) { c.LLM.ImageScale = 1.5 },
		"source":      func(c *Config) { c.Orders.Source = "thunderbird" },
		"erp title":   func(c *Config) { c.Orders.ErpTitle = "" },
		"scrolls":     func(c *Config) { c.News.Scrolls = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
