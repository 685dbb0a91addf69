package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	GCPProjectID string `yaml:"gcp_project"`
	GCPLocation  string `yaml:"gcp_location"`

	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`

	SessionTimeout time.Duration `yaml:"session_timeout"`
	PersonasFile   string        `yaml:"personas_file"` // empty = built-in table
}

type LLMConfig struct {
	Provider  string `yaml:"provider"` // mock, vertex, gemini or openai
	ModelName string `yaml:"model_name"`
	APIKey    string `yaml:"-"`
}

// GenerationConfig bounds every text generation call.
type GenerationConfig struct {
	Temperature  float32       `yaml:"temperature"`
	MaxTokens    int32         `yaml:"max_tokens"`
	TopP         float32       `yaml:"top_p"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"` // memory, sqlite or firestore
	SQLitePath string `yaml:"sqlite_path"`
}

// Default returns the local development configuration.
func Default() *Config {
	return &Config{
		Mode:        ModeLocal,
		Port:        "8080",
		LogLevel:    "info",
		GCPLocation: "us-central1",
		LLM: LLMConfig{
			Provider:  "mock",
			ModelName: "gemini-2.5-flash-lite",
		},
		Generation: GenerationConfig{
			Temperature:  0.7,
			MaxTokens:    1024,
			TopP:         0.9,
			Timeout:      30 * time.Second,
			MaxAttempts:  3,
			RetryBackoff: 500 * time.Millisecond,
		},
		Storage: StorageConfig{
			Backend:    "memory",
			SQLitePath: "data/farum.db",
		},
		SessionTimeout: 30 * time.Minute,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

func getIntEnv(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getFloatEnv(key string, def float32) float32 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 32); err == nil {
		return float32(f)
	}
	return def
}

// Load starts from Default, overlays the YAML file named by
// FARUM_CONFIG_FILE (if any) and then the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FARUM_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	switch getEnv("FARUM_MODE", string(c.Mode)) {
	case "gcp":
		c.Mode = ModeGCP
	default:
		c.Mode = ModeLocal
	}

	c.Port = getEnv("FARUM_PORT", getEnv("PORT", c.Port))
	c.LogLevel = getEnv("FARUM_LOG_LEVEL", c.LogLevel)

	c.GCPProjectID = getEnv("FARUM_GCP_PROJECT", c.GCPProjectID)
	c.GCPLocation = getEnv("FARUM_GCP_LOCATION", c.GCPLocation)

	c.LLM.Provider = getEnv("FARUM_LLM_PROVIDER", c.LLM.Provider)
	c.LLM.ModelName = getEnv("FARUM_MODEL_NAME", c.LLM.ModelName)
	// kept for older deployments
	if getBoolEnv("FARUM_USE_MOCK_LLM", false) {
		c.LLM.Provider = "mock"
	}
	switch c.LLM.Provider {
	case "openai":
		c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	case "gemini":
		c.LLM.APIKey = getEnv("GEMINI_API_KEY", c.LLM.APIKey)
	}

	c.Generation.Temperature = getFloatEnv("FARUM_GEN_TEMPERATURE", c.Generation.Temperature)
	c.Generation.TopP = getFloatEnv("FARUM_GEN_TOP_P", c.Generation.TopP)
	c.Generation.MaxTokens = int32(getIntEnv("FARUM_GEN_MAX_TOKENS", int(c.Generation.MaxTokens)))
	c.Generation.Timeout = getDurationEnv("FARUM_GEN_TIMEOUT", c.Generation.Timeout)
	c.Generation.MaxAttempts = getIntEnv("FARUM_GEN_MAX_ATTEMPTS", c.Generation.MaxAttempts)
	c.Generation.RetryBackoff = getDurationEnv("FARUM_GEN_RETRY_BACKOFF", c.Generation.RetryBackoff)

	c.Storage.Backend = getEnv("FARUM_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.SQLitePath = getEnv("FARUM_SQLITE_PATH", c.Storage.SQLitePath)

	c.SessionTimeout = getDurationEnv("FARUM_SESSION_TIMEOUT", c.SessionTimeout)
	c.PersonasFile = getEnv("FARUM_PERSONAS_FILE", c.PersonasFile)
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		errs = append(errs, errors.New("FARUM_GCP_PROJECT must be set in gcp mode"))
	}

	switch c.LLM.Provider {
	case "mock":
	case "vertex":
		if c.GCPProjectID == "" || c.GCPLocation == "" {
			errs = append(errs, errors.New("vertex provider needs FARUM_GCP_PROJECT and FARUM_GCP_LOCATION"))
		}
	case "gemini", "openai":
		if c.LLM.APIKey == "" {
			errs = append(errs, fmt.Errorf("%s provider needs an API key", c.LLM.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}

	switch c.Storage.Backend {
	case "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite backend needs FARUM_SQLITE_PATH"))
		}
	case "firestore":
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("FARUM_GCP_PROJECT is required for Firestore storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	if c.Generation.MaxAttempts < 1 {
		errs = append(errs, errors.New("generation max_attempts must be at least 1"))
	}
	if c.Generation.Timeout <= 0 {
		errs = append(errs, errors.New("generation timeout must be positive"))
	}
	if c.SessionTimeout <= 0 {
		errs = append(errs, errors.New("session timeout must be positive"))
	}

	return errors.Join(errs...)
}
