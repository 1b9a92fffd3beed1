package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/huimingz/prgen/internal/llm"
	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/pkg/lang"
)

const (
	// FileName is the config file looked up in the working and home directories
	FileName = ".prgen.yaml"

	// EnvPrefix prefixes environment overrides, e.g. PRGEN_LANGUAGE
	EnvPrefix = "PRGEN"

	// DefaultStoreDir holds the saved preference and user templates
	DefaultStoreDir = "~/.generate-pr-cli"

	// PreferenceFile and TemplatesFile live under the store dir
	PreferenceFile = "config.json"
	TemplatesFile  = "templates.json"
)

// Config holds the prgen configuration
type Config struct {
	// Model is the Gemini model name
	Model string `mapstructure:"model"`

	// Language is the fallback locale when none is saved or passed
	Language string `mapstructure:"language"`

	// APIKey may reference environment variables as ${VAR}
	APIKey string `mapstructure:"api_key"`

	StoreDir          string `mapstructure:"store_dir"`
	TemplatePolicy    string `mapstructure:"template_policy"`
	ValidateKeyFormat bool   `mapstructure:"validate_key_format"`

	// OutputFile replaces the localized default filename when saving
	OutputFile string `mapstructure:"output_file"`

	// Source is the config file that was read, empty when none was found
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", llm.DefaultModel)
	v.SetDefault("language", "")
	v.SetDefault("api_key", "")
	v.SetDefault("store_dir", DefaultStoreDir)
	v.SetDefault("template_policy", string(templates.PolicyOverwrite))
	v.SetDefault("validate_key_format", true)
	v.SetDefault("output_file", "")
}

// Default returns the configuration used when no file is present
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults alone always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}

	if c.Language != "" {
		if _, ok := lang.ParseLocale(c.Language); !ok {
			return fmt.Errorf("unsupported language: %q (expected es or en)", c.Language)
		}
	}

	if _, err := templates.ParsePolicy(c.TemplatePolicy); err != nil {
		return err
	}

	if strings.TrimSpace(c.StoreDir) == "" {
		return fmt.Errorf("store_dir is required")
	}

	return nil
}

// Locale returns the configured locale, reporting whether one was set
func (c *Config) Locale() (lang.Locale, bool) {
	if c.Language == "" {
		return "", false
	}
	return lang.ParseLocale(c.Language)
}

// Policy returns the duplicate-name policy for user templates
func (c *Config) Policy() templates.DuplicatePolicy {
	p, err := templates.ParsePolicy(c.TemplatePolicy)
	if err != nil {
		return templates.PolicyOverwrite
	}
	return p
}

// StorePath returns the absolute store directory
func (c *Config) StorePath() (string, error) {
	return expandPath(c.StoreDir)
}

// PreferencePath returns the path of the saved preference document
func (c *Config) PreferencePath() (string, error) {
	dir, err := c.StorePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PreferenceFile), nil
}

// TemplatesPath returns the path of the user templates document
func (c *Config) TemplatesPath() (string, error) {
	dir, err := c.StorePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TemplatesFile), nil
}

// expandPath expands environment variables and a leading ~/
func expandPath(p string) (string, error) {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if p == "~" || strings.HasPrefix(p, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		p = filepath.Join(homeDir, strings.TrimPrefix(p[1:], "/"))
	}
	return p, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper, source string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		if source != "" {
			return nil, fmt.Errorf("invalid configuration in %s: %w", source, err)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v, path)
}

// Load loads configuration with the following priority:
// 1. Custom path if provided (must exist)
// 2. Current directory .prgen.yaml
// 3. Home directory ~/.prgen.yaml
// Without any file the defaults apply. PRGEN_* variables override either way.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	candidates := []string{FileName}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFromFile(path)
	}

	return decode(newViper(), "")
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// InitTemplate is written by `prgen init`
const InitTemplate = `# prgen configuration file

# Gemini model used for generation
model: gemini-2.0-flash

# Interface and output language when none is saved (es, en)
# language: es

# API key, used when neither --api-key nor a saved key is present.
# Environment references are expanded. GEMINI_API_KEY is read last.
# api_key: ${GEMINI_API_KEY}

# Directory holding the saved preference and user templates
store_dir: ~/.generate-pr-cli

# What happens when a user template is created with an existing name:
# overwrite (default) or reject
template_policy: overwrite

# Reject keys that do not look like Gemini keys before calling the API
validate_key_format: true

# Default filename offered when saving a description
# output_file: pr-description.md
`

// WriteInitFile writes InitTemplate to path. An existing file is only
// replaced when force is set.
func WriteInitFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := os.WriteFile(path, []byte(InitTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// HomeConfigPath returns ~/.prgen.yaml
func HomeConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, FileName), nil
}
