package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported generative SDKs.
const (
	SDKGenerativeAI = "generative-ai"
	SDKGenAI        = "genai"
)

// Config holds all agent configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"` // debug, release, test
}

// BackendConfig selects and tunes the generative model.
type BackendConfig struct {
	SDK             string  `yaml:"sdk"` // generative-ai, genai
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"top_p"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

type ReportConfig struct {
	Timeout   string `yaml:"timeout"`
	BMIPolicy string `yaml:"bmi_policy"` // strict, advisory
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			GinMode: "release",
		},
		Backend: BackendConfig{
			SDK:             SDKGenerativeAI,
			Model:           "gemini-2.5-flash",
			Temperature:     0.7,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		Report: ReportConfig{
			Timeout:   "60s",
			BMIPolicy: "strict",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a .env file if present, then the YAML file at path (if any),
// then applies environment overrides. A missing YAML file yields defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Backend.Model = v
	}
	if v := os.Getenv("GEMINI_SDK"); v != "" {
		c.Backend.SDK = v
	}
	if v := os.Getenv("GEMINI_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("invalid GEMINI_TEMPERATURE %q: %w", v, err)
		}
		c.Backend.Temperature = float32(f)
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := os.Getenv("REPORT_TIMEOUT"); v != "" {
		c.Report.Timeout = v
	}
	if v := os.Getenv("BMI_POLICY"); v != "" {
		c.Report.BMIPolicy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// ReportTimeout returns the backend call bound, falling back to 60s.
func (c *Config) ReportTimeout() time.Duration {
	d, err := time.ParseDuration(c.Report.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Validate checks that the configuration can start the agent.
func (c *Config) Validate() error {
	if c.Backend.APIKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required")
	}
	switch c.Backend.SDK {
	case SDKGenerativeAI, SDKGenAI:
	default:
		return fmt.Errorf("invalid backend sdk %q (valid: %s, %s)", c.Backend.SDK, SDKGenerativeAI, SDKGenAI)
	}
	switch c.Report.BMIPolicy {
	case "strict", "advisory":
	default:
		return fmt.Errorf("invalid bmi policy %q (valid: strict, advisory)", c.Report.BMIPolicy)
	}
	if d, err := time.ParseDuration(c.Report.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid report timeout %q", c.Report.Timeout)
	}
	return nil
}
