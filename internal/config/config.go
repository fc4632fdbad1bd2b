package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/veritide/compliance-cli/internal/extract"
)

// Config holds the full application configuration.
type Config struct {
	Portal    PortalConfig    `yaml:"portal" mapstructure:"portal"`
	Browser   BrowserConfig   `yaml:"browser" mapstructure:"browser"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Rules     extract.Rules   `yaml:"rules" mapstructure:"rules"`
	Labels    LabelsConfig    `yaml:"labels" mapstructure:"labels"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// PortalConfig holds the target portal's location and credentials.
type PortalConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// BrowserConfig configures the browser session driving the portal.
type BrowserConfig struct {
	Headless        bool `yaml:"headless" mapstructure:"headless"`
	SlowMoMs        int  `yaml:"slow_mo_ms" mapstructure:"slow_mo_ms"`
	NavTimeoutSecs  int  `yaml:"nav_timeout_secs" mapstructure:"nav_timeout_secs"`
	NavIntervalSecs int  `yaml:"nav_interval_secs" mapstructure:"nav_interval_secs"`
}

// AnthropicConfig holds Anthropic API settings for the research phase.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LabelsConfig points at an optional YAML file overriding the built-in
// field label sets.
type LabelsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentInvestigations int `yaml:"max_concurrent_investigations" mapstructure:"max_concurrent_investigations"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPLIANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "compliance.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_investigations", 3)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.nav_timeout_secs", 30)
	v.SetDefault("browser.nav_interval_secs", 1)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("rules.flag_threshold", 10000)
	v.SetDefault("rules.high_risk_keywords", []string{"crypto", "offshore", "casino", "shell"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// Keyword-to-level mappings are ordered; config files cannot express
	// that reliably, so absent an override the defaults apply.
	if len(cfg.Rules.RiskKeywords) == 0 {
		cfg.Rules.RiskKeywords = extract.DefaultRules().RiskKeywords
	}
	if len(cfg.Rules.HighRiskKeywords) == 0 {
		cfg.Rules.HighRiskKeywords = extract.DefaultRules().HighRiskKeywords
	}

	return &cfg, nil
}

// Validate checks that the configuration required for the given mode is
// present. Modes correspond to the top-level commands.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Batch.MaxConcurrentInvestigations < 1 || c.Batch.MaxConcurrentInvestigations > 20 {
		problems = append(problems, "batch.max_concurrent_investigations must be between 1 and 20")
	}

	needsPortal := func() {
		if c.Portal.BaseURL == "" {
			problems = append(problems, "portal.base_url is required")
		}
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
	}

	switch mode {
	case "investigate", "batch":
		needsPortal()
	case "serve":
		needsPortal()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "reports", "export":
		// Store-only modes need no portal or API credentials.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// LoadLabels resolves the label sets, merging the configured override file
// over the defaults when one is set.
func (c *Config) LoadLabels() (extract.Labels, error) {
	if c.Labels.File == "" {
		return extract.DefaultLabels(), nil
	}
	return extract.LoadLabels(c.Labels.File)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
