// Package config loads desktop-relay settings from defaults, an optional
// YAML file, and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DESKTOP_RELAY_LLM_MODEL.
const EnvPrefix = "DESKTOP_RELAY"

// Secrets read from the unprefixed environment, as the automation server
// and model vendors document them.
const (
	EnvAutomationKey = "SCREENGRASP_API_KEY"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
)

// ErrMissingAutomationKey is returned by Validate when no automation
// server key is configured.
var ErrMissingAutomationKey = errors.New(EnvAutomationKey + " is not set")

// Config is the full relay configuration, loaded by Load.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"  yaml:"logger"`
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	Pacing  PacingConfig  `mapstructure:"pacing"  yaml:"pacing"`
	Orders  OrdersConfig  `mapstructure:"orders"  yaml:"orders"`
	News    NewsConfig    `mapstructure:"news"    yaml:"news"`
	Calc    CalcConfig    `mapstructure:"calc"    yaml:"calc"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level      string `mapstructure:"level"       yaml:"level"`
	Format     string `mapstructure:"format"      yaml:"format"` // console or json
	LogFile    string `mapstructure:"log_file"    yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool   `mapstructure:"compress"    yaml:"compress"`
}

// BackendConfig locates the automation server and, optionally, the
// executable to launch it.
type BackendConfig struct {
	URL            string        `mapstructure:"url"             yaml:"url"`
	APIKey         string        `mapstructure:"api_key"         yaml:"-"`
	Executable     string        `mapstructure:"executable"      yaml:"executable"`
	StartupTimeout time.Duration `mapstructure:"startup_timeout" yaml:"startup_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// BrowserConfig selects who drives Chrome.
type BrowserConfig struct {
	// Driver is "server" (the automation server owns Chrome) or "chromedp".
	Driver   string `mapstructure:"driver"    yaml:"driver"`
	Headless bool   `mapstructure:"headless"  yaml:"headless"`
	ExecPath string `mapstructure:"exec_path" yaml:"exec_path"`
	Quality  int    `mapstructure:"quality"   yaml:"quality"`
}

// LLMConfig selects the model provider and its keys.
type LLMConfig struct {
	Provider   string  `mapstructure:"provider"    yaml:"provider"` // openai or gemini
	Model      string  `mapstructure:"model"       yaml:"model"`
	BaseURL    string  `mapstructure:"base_url"    yaml:"base_url"`
	OpenAIKey  string  `mapstructure:"openai_key"  yaml:"-"`
	GeminiKey  string  `mapstructure:"gemini_key"  yaml:"-"`
	ImageScale float64 `mapstructure:"image_scale" yaml:"image_scale"`
	PruneTree  bool    `mapstructure:"prune_tree"  yaml:"prune_tree"`
}

// APIKey returns the key of the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == "gemini" {
		return c.GeminiKey
	}
	return c.OpenAIKey
}

// SourcePacing holds the fixed waits of one mail source.
type SourcePacing struct {
	Load   time.Duration `mapstructure:"load"   yaml:"load"`
	Focus  time.Duration `mapstructure:"focus"  yaml:"focus"`
	Type   time.Duration `mapstructure:"type"   yaml:"type"`
	Search time.Duration `mapstructure:"search" yaml:"search"`
	Open   time.Duration `mapstructure:"open"   yaml:"open"`
}

type ReplayPacing struct {
	Customer time.Duration `mapstructure:"customer" yaml:"customer"`
	Field    time.Duration `mapstructure:"field"    yaml:"field"`
	Add      time.Duration `mapstructure:"add"      yaml:"add"`
	Save     time.Duration `mapstructure:"save"     yaml:"save"`
}

type NewsPacing struct {
	FirstLoad time.Duration `mapstructure:"first_load" yaml:"first_load"`
	Load      time.Duration `mapstructure:"load"       yaml:"load"`
	Scroll    time.Duration `mapstructure:"scroll"     yaml:"scroll"`
	Between   time.Duration `mapstructure:"between"    yaml:"between"`
}

type PacingConfig struct {
	Gmail     SourcePacing  `mapstructure:"gmail"      yaml:"gmail"`
	Outlook   SourcePacing  `mapstructure:"outlook"    yaml:"outlook"`
	ErpLaunch time.Duration `mapstructure:"erp_launch" yaml:"erp_launch"`
	Replay    ReplayPacing  `mapstructure:"replay"     yaml:"replay"`
	News      NewsPacing    `mapstructure:"news"       yaml:"news"`
	CalcLoad  time.Duration `mapstructure:"calc_load"  yaml:"calc_load"`

	// PollWindows replaces the blind ERP launch wait with polling the
	// window list for the ERP title.
	PollWindows  bool          `mapstructure:"poll_windows"  yaml:"poll_windows"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"  yaml:"poll_timeout"`
}

type OrdersConfig struct {
	Source   string `mapstructure:"source"    yaml:"source"` // gmail or outlook
	Subject  string `mapstructure:"subject"   yaml:"subject"`
	ErpTitle string `mapstructure:"erp_title" yaml:"erp_title"`
	ErpURL   string `mapstructure:"erp_url"   yaml:"erp_url"`
	// ErpPath skips the download and launches this executable instead.
	ErpPath string `mapstructure:"erp_path" yaml:"erp_path"`
}

type NewsConfig struct {
	Accounts []string `mapstructure:"accounts" yaml:"accounts"`
	Scrolls  int      `mapstructure:"scrolls"  yaml:"scrolls"`
}

type CalcConfig struct {
	App        string `mapstructure:"app"        yaml:"app"`
	Expression string `mapstructure:"expression" yaml:"expression"`
}

// DefaultErpURL is where the mock ERP used by the orders pipeline is hosted.
const DefaultErpURL = "https://www.dropbox.com/scl/fi/4qc9w57zrmmisyqu3ojnp/mini-erp-mock.exe?rlkey=x5m3ob810zt1scf0mpfn15l4v&dl=1"

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Backend --
	v.SetDefault("backend.url", "http://localhost:54321")
	v.SetDefault("backend.executable", "")
	v.SetDefault("backend.startup_timeout", "2m")
	v.SetDefault("backend.request_timeout", "60s")

	// -- Browser --
	v.SetDefault("browser.driver", "server")
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.quality", 80)

	// -- LLM --
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.image_scale", 1.0)
	v.SetDefault("llm.prune_tree", false)

	// -- Pacing --
	v.SetDefault("pacing.gmail.load", "10s")
	v.SetDefault("pacing.gmail.focus", "1s")
	v.SetDefault("pacing.gmail.type", "500ms")
	v.SetDefault("pacing.gmail.search", "5s")
	v.SetDefault("pacing.gmail.open", "5s")
	v.SetDefault("pacing.outlook.load", "10s")
	v.SetDefault("pacing.outlook.focus", "2s")
	v.SetDefault("pacing.outlook.type", "5s")
	v.SetDefault("pacing.outlook.search", "5s")
	v.SetDefault("pacing.outlook.open", "5s")
	v.SetDefault("pacing.erp_launch", "5s")
	v.SetDefault("pacing.replay.customer", "500ms")
	v.SetDefault("pacing.replay.field", "200ms")
	v.SetDefault("pacing.replay.add", "1s")
	v.SetDefault("pacing.replay.save", "500ms")
	v.SetDefault("pacing.news.first_load", "7s")
	v.SetDefault("pacing.news.load", "4s")
	v.SetDefault("pacing.news.scroll", "1s")
	v.SetDefault("pacing.news.between", "1s")
	v.SetDefault("pacing.calc_load", "0s")
	v.SetDefault("pacing.poll_windows", false)
	v.SetDefault("pacing.poll_interval", "500ms")
	v.SetDefault("pacing.poll_timeout", "30s")

	// -- Pipelines --
	v.SetDefault("orders.source", "gmail")
	v.SetDefault("orders.subject", "New Computerstuff.com Order")
	v.SetDefault("orders.erp_title", "ERP system")
	v.SetDefault("orders.erp_url", DefaultErpURL)
	v.SetDefault("news.accounts", []string{"kimmonismus", "ai_for_success", "slow_developer"})
	v.SetDefault("news.scrolls", 3)
	v.SetDefault("calc.app", "calc")
	v.SetDefault("calc.expression", "3+4")
}

// BindEnv wires the prefixed overrides and the unprefixed secrets into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("backend.api_key", EnvPrefix+"_BACKEND_API_KEY", EnvAutomationKey)
	_ = v.BindEnv("llm.openai_key", EnvPrefix+"_LLM_OPENAI_KEY", EnvOpenAIKey)
	_ = v.BindEnv("llm.gemini_key", EnvPrefix+"_LLM_GEMINI_KEY", EnvGeminiKey)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper decodes v into a Config. It does not validate, so
// commands that need no automation server can still load it.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Load reads the optional config file at path (or desktop-relay.yaml in the
// working directory when path is empty) and applies the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("desktop-relay")
		v.SetConfigType("yaml")
	}
	BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Backend.APIKey == "" {
		return ErrMissingAutomationKey
	}
	switch c.Browser.Driver {
	case "server", "chromedp":
	default:
		return fmt.Errorf("browser.driver must be server or chromedp, got %q", c.Browser.Driver)
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider must be openai or gemini, got %q", c.LLM.Provider)
	}
	if c.LLM.ImageScale <= 0 || c.LLM.ImageScale > 1 {
		return fmt.Errorf("llm.image_scale must be in (0, 1], got %v", c.LLM.ImageScale)
	}
	switch c.Orders.Source {
	case "gmail", "outlook":
	default:
		return fmt.Errorf("orders.source must be gmail or outlook, got %q", c.Orders.Source)
	}
	if c.Orders.ErpTitle == "" {
		return fmt.Errorf("orders.erp_title must not be empty")
	}
	if c.News.Scrolls < 0 {
		return fmt.Errorf("news.scrolls must not be negative")
	}
	return nil
}
