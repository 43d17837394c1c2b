// pkg/config/config.go

// Package config resolves commitia's settings once per invocation from the
// environment, .env files, the user config file and built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/analysis"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/xdg"
)

const EnvPrefix = "COMMITIA"

// CredentialEnvVars are read in order for the model API key.
var CredentialEnvVars = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}

type Config struct {
	GoogleAPIKey      string        `mapstructure:"google_api_key"`
	Model             string        `mapstructure:"model" validate:"required"`
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	Temperature       float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens         int           `mapstructure:"max_tokens" validate:"gt=0"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=0"`
	RecentCommits     int           `mapstructure:"recent_commits" validate:"gte=0,lte=50"`
	MaxDiffBytes      int           `mapstructure:"max_diff_bytes" validate:"gt=0"`
	MaxTotalDiffBytes int           `mapstructure:"max_total_diff_bytes" validate:"gtefield=MaxDiffBytes"`

	// Command flags, also settable as COMMITIA_AUTO_COMMIT / COMMITIA_VERBOSE or in the file.
	AutoCommit bool `mapstructure:"auto-commit"`
	Verbose    bool `mapstructure:"verbose"`

	// File is the config file that was read, or "" when none existed.
	File string `mapstructure:"-"`
}

type Options struct {
	// RepoRoot is searched for a .env file in addition to the working directory.
	RepoRoot string
	// File overrides the default $XDG_CONFIG_HOME/commitia/config.yaml.
	File string
	// Flags are bound so explicitly set flags take precedence over everything else.
	Flags *pflag.FlagSet
	Log   *zap.Logger
}

// DefaultFile returns the default config file location.
func DefaultFile() string {
	return xdg.XDGConfigPath(shared.AppID, shared.ConfigFileName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("google_api_key", "")
	v.SetDefault("model", llm.DefaultModel)
	v.SetDefault("base_url", llm.DefaultBaseURL)
	v.SetDefault("temperature", llm.DefaultTemperature)
	v.SetDefault("max_tokens", llm.DefaultMaxTokens)
	v.SetDefault("timeout", llm.DefaultTimeout)
	v.SetDefault("requests_per_minute", 30)

	limits := analysis.DefaultLimits()
	v.SetDefault("recent_commits", limits.RecentCommits)
	v.SetDefault("max_diff_bytes", limits.MaxDiffBytes)
	v.SetDefault("max_total_diff_bytes", limits.MaxTotalDiffBytes)

	v.SetDefault("auto-commit", false)
	v.SetDefault("verbose", false)
}

// Load resolves the configuration. A missing config file is not an error.
func Load(opts Options) (*Config, error) {
	log := opts.Log
	if log == nil {
		log = zap.L()
	}

	loadDotEnv(log, opts.RepoRoot)

	v := viper.New()
	setDefaults(v)
	cli.SetViperEnvPrefix(v, EnvPrefix)
	if err := v.BindEnv(append([]string{"google_api_key"}, CredentialEnvVars...)...); err != nil {
		return nil, commitia_err.NewInternalError("failed to bind credential environment", err)
	}

	path := opts.File
	if path == "" {
		path = DefaultFile()
	}
	file := ""
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, commitia_err.NewConfigError("failed to read config file "+path, err,
				"Fix the YAML syntax in "+path+" or remove the file")
		}
		file = path
	}

	if opts.Flags != nil {
		if err := cli.BindFlagsToViper(opts.Flags, v); err != nil {
			return nil, commitia_err.NewInternalError("failed to bind command flags", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, commitia_err.NewConfigError("failed to decode configuration", err,
			"Check the value types in "+path)
	}
	cfg.GoogleAPIKey = strings.TrimSpace(cfg.GoogleAPIKey)
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug("Configuration resolved",
		zap.String("config_file", cfg.File),
		zap.String("model", cfg.Model),
		zap.Float64("temperature", cfg.Temperature),
		zap.Bool("credential_present", cfg.GoogleAPIKey != ""))

	return cfg, nil
}

// loadDotEnv loads .env from the repository root and the working directory.
// godotenv never overrides variables that are already set.
func loadDotEnv(log *zap.Logger, repoRoot string) {
	candidates := []string{shared.EnvFileName}
	if repoRoot != "" {
		candidates = append([]string{filepath.Join(repoRoot, shared.EnvFileName)}, candidates...)
	}

	seen := make(map[string]bool)
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			log.Warn("Ignoring unreadable .env file", zap.String("path", abs), zap.Error(err))
			continue
		}
		log.Debug("Loaded .env file", zap.String("path", abs))
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		where := "environment"
		if c.File != "" {
			where = c.File
		}
		return commitia_err.NewConfigError("invalid configuration", err, "Correct the values in "+where)
	}
	return nil
}

// RequireCredential fails when no API key was resolved. It must be called
// before any network access.
func (c *Config) RequireCredential() error {
	if c.GoogleAPIKey != "" {
		return nil
	}
	return commitia_err.NewConfigError("GOOGLE_API_KEY not found", nil,
		"Get an API key at https://aistudio.google.com/",
		"export GOOGLE_API_KEY='your-key'",
		"Or add GOOGLE_API_KEY=your-key to a .env file in the repository root",
	)
}

// LLM returns the model client configuration.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		APIKey:            c.GoogleAPIKey,
		Model:             c.Model,
		BaseURL:           c.BaseURL,
		Temperature:       c.Temperature,
		MaxTokens:         c.MaxTokens,
		Timeout:           c.Timeout,
		RequestsPerMinute: c.RequestsPerMinute,
	}
}

// Limits returns the change summary bounds.
func (c *Config) Limits() analysis.Limits {
	return analysis.Limits{
		RecentCommits:     c.RecentCommits,
		MaxDiffBytes:      c.MaxDiffBytes,
		MaxTotalDiffBytes: c.MaxTotalDiffBytes,
	}
}
