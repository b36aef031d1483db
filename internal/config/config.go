package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "VETCLINIC"

const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	App    string `mapstructure:"app"`
}

type AnalysisConfig struct {
	Provider        string        `mapstructure:"provider"` // gemini | openai | none
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	SummaryLanguage string        `mapstructure:"summary_language"`
}

type SeedConfig struct {
	// Vacío => datos embebidos.
	Path string `mapstructure:"path"`
}

// Load lee path (opcional, YAML), luego env VETCLINIC_* y las variables
// heredadas PORT / LOG_LEVEL / LOG_FORMAT / APP_NAME / API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string]string{
		"server.port":      "PORT",
		"logging.level":    "LOG_LEVEL",
		"logging.format":   "LOG_FORMAT",
		"logging.app":      "APP_NAME",
		"analysis.api_key": "API_KEY",
	}
	for key, env := range legacy {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, err
		}
	}

	if p := strings.TrimSpace(path); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	cfg.Analysis.Provider = strings.ToLower(strings.TrimSpace(cfg.Analysis.Provider))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.app", "vet-clinic-ops")

	v.SetDefault("analysis.provider", ProviderGemini)
	v.SetDefault("analysis.api_key", "")
	v.SetDefault("analysis.model", "")
	v.SetDefault("analysis.base_url", "")
	v.SetDefault("analysis.timeout", "15s")
	v.SetDefault("analysis.summary_language", "Portuguese (Brazil)")

	v.SetDefault("seed.path", "")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Analysis.Provider {
	case ProviderNone, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("analysis.provider %q: must be gemini, openai or none", c.Analysis.Provider)
	}
	if c.Analysis.Timeout < 0 {
		return errors.New("analysis.timeout must not be negative")
	}
	return nil
}
