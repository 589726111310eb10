package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"listmodels/internal/clierr"
)

const (
	EnvPrefix      = "LISTMODELS"
	ConfigName     = ".listmodels"
	DefaultEnvFile = ".env"

	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Viper keys. Flags share these names.
const (
	KeyAPIKey     = "api-key"
	KeyProvider   = "provider"
	KeyBackend    = "backend"
	KeyProject    = "project"
	KeyLocation   = "location"
	KeyBaseURL    = "base-url"
	KeyVerbose    = "verbose"
	KeyMethods    = "methods"
	KeyCandidates = "candidates"
)

// Config holds everything needed to reach the model service.
type Config struct {
	APIKey   string
	Provider string
	Backend  string
	Project  string
	Location string
	BaseURL  string
	Verbose  bool

	// Methods filters listed models; empty means no filter.
	Methods []string
	// Candidates overrides the models tried by probe.
	Candidates []string
}

// New returns a viper instance with defaults and environment lookups set.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.BindEnv(KeyAPIKey, EnvPrefix+"_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	v.BindEnv(KeyProject, EnvPrefix+"_PROJECT", "GOOGLE_CLOUD_PROJECT")
	v.BindEnv(KeyLocation, EnvPrefix+"_LOCATION", "GOOGLE_CLOUD_LOCATION")

	v.SetDefault(KeyProvider, "gemini")
	v.SetDefault(KeyBackend, BackendGeminiAPI)
	return v
}

// BindFlags binds every flag in fs that has a config key of the same name.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyAPIKey, KeyProvider, KeyBackend, KeyProject, KeyLocation, KeyBaseURL, KeyVerbose} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file. A missing file is ignored.
// Variables already present in the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the config file. An explicit path must exist; without one
// $HOME/.listmodels.{yaml,json,toml} is used if present.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(ConfigName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIKey:     strings.TrimSpace(v.GetString(KeyAPIKey)),
		Provider:   strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider))),
		Backend:    strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Project:    v.GetString(KeyProject),
		Location:   v.GetString(KeyLocation),
		BaseURL:    v.GetString(KeyBaseURL),
		Verbose:    v.GetBool(KeyVerbose),
		Methods:    splitList(v.GetStringSlice(KeyMethods)),
		Candidates: splitList(v.GetStringSlice(KeyCandidates)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts both list values and comma separated strings, as
// environment variables arrive as a single string.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the backend has the credentials it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGeminiAPI:
		if c.APIKey == "" {
			return clierr.New(clierr.CodeMissingCredential, "no API key configured",
				"set GEMINI_API_KEY (or GOOGLE_API_KEY) in the environment or a .env file",
				"pass --api-key",
				"add api-key to $HOME/.listmodels.yaml",
			)
		}
	case BackendVertexAI:
		if c.Project == "" || c.Location == "" {
			return clierr.New(clierr.CodeInvalidConfig, "vertex-ai backend needs a project and a location",
				"set GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION",
				"pass --project and --location",
			)
		}
	default:
		return clierr.New(clierr.CodeInvalidConfig, fmt.Sprintf("unknown backend %q", c.Backend),
			"use --backend "+BackendGeminiAPI,
			"use --backend "+BackendVertexAI,
		)
	}
	return nil
}

// MaskKey keeps the first four characters of a key for log output.
func MaskKey(key string) string {
	if key == "" {
		return "<unset>"
	}
	if len(key) <= 4 {
		return "..."
	}
	return key[:4] + "..."
}
