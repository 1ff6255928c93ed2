// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sciados/campaign-engine/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Groq      GroqConfig      `yaml:"groq" mapstructure:"groq"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Generate  GenerateConfig  `yaml:"generate" mapstructure:"generate"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// ProvidersConfig configures the provider catalog.
type ProvidersConfig struct {
	// CatalogPath optionally points at a YAML catalog; empty means the
	// built-in default catalog.
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GroqConfig holds Groq API settings.
type GroqConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// NotionConfig holds Notion API credentials and the publish target.
type NotionConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	ParentPage string `yaml:"parent_page" mapstructure:"parent_page"`
}

// GenerateConfig tunes content generation.
type GenerateConfig struct {
	// MinQualityScore logs a warning when a prompt is built with fewer
	// real intelligence variables than this percentage.
	MinQualityScore float64 `yaml:"min_quality_score" mapstructure:"min_quality_score"`
}

// ServerConfig configures the HTTP server.
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
	v.SetEnvPrefix("CAMPAIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "campaign.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("providers.timeout_secs", 90)
	v.SetDefault("generate.min_quality_score", 60.0)
	v.SetDefault("openai.base_url", "")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")

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

	return &cfg, nil
}

// Validate checks the fields required for the given run mode. Modes map
// to commands: "enhance" and "generate" need provider credentials,
// "publish" needs Notion credentials, "serve" needs a usable port.
func (c *Config) Validate(mode string) error {
	var missing []string

	requireProviderKey := func() {
		if c.Anthropic.Key == "" && c.OpenAI.Key == "" && c.Groq.Key == "" {
			missing = append(missing, "at least one provider key (anthropic.key, openai.key, or groq.key) is required")
		}
	}

	switch mode {
	case "enhance", "generate":
		requireProviderKey()
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
	case "serve":
		requireProviderKey()
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	case "publish":
		if c.Notion.Token == "" {
			missing = append(missing, "notion.token is required")
		}
		if c.Notion.ParentPage == "" {
			missing = append(missing, "notion.parent_page is required")
		}
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
	case "export":
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		missing = append(missing, "store.driver must be sqlite or postgres")
	}
	if c.Generate.MinQualityScore < 0 || c.Generate.MinQualityScore > 100 {
		missing = append(missing, "generate.min_quality_score must be between 0 and 100")
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
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
