// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`
	Build    BuildConfig    `yaml:"build" mapstructure:"build"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourcesConfig holds the two source page URLs.
type SourcesConfig struct {
	InvestmentListURL string `yaml:"investment_list_url" mapstructure:"investment_list_url"`
	PortfolioURL      string `yaml:"portfolio_url" mapstructure:"portfolio_url"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	DelayMinMS  int    `yaml:"delay_min_ms" mapstructure:"delay_min_ms"`
	DelayMaxMS  int    `yaml:"delay_max_ms" mapstructure:"delay_max_ms"`
}

// OutputConfig configures where the static JSON tree is written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// SnapshotConfig configures the cross-run snapshot database. An empty path
// disables the snapshot, resetting first-seen timestamps every run.
type SnapshotConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BuildConfig configures build behavior.
type BuildConfig struct {
	MaxCompanies int `yaml:"max_companies" mapstructure:"max_companies"`
	MinCompanies int `yaml:"min_companies" mapstructure:"min_companies"`
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
	v.SetEnvPrefix("A16Z")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.investment_list_url", "https://a16z.com/investment-list/")
	v.SetDefault("sources.portfolio_url", "https://a16z.com/portfolio/")
	v.SetDefault("fetch.user_agent", "a16z-oss-api/1.0 (https://github.com/TheDarkNight21/a16z-oss-api)")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.delay_min_ms", 800)
	v.SetDefault("fetch.delay_max_ms", 1500)
	v.SetDefault("output.dir", "docs")
	v.SetDefault("snapshot.path", "a16z-snapshot.db")
	v.SetDefault("build.max_companies", 0)
	v.SetDefault("build.min_companies", 500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
