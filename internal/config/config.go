// Package config loads the coach configuration from defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey means GEMINI_API_KEY was not provided
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// ErrWeakJWTSecret means the session signing secret is too short to trust
var ErrWeakJWTSecret = fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)

const minJWTSecretLen = 16

// SetupMessage is shown when the tool cannot start because of missing credentials
const SetupMessage = `Gemini API 키를 찾을 수 없습니다.
환경 변수 GEMINI_API_KEY 에 API 키를 설정한 뒤 다시 실행해주세요.
  export GEMINI_API_KEY=<your key>
키는 https://aistudio.google.com/app/apikey 에서 발급받을 수 있습니다.`

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORSConfig    `yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins"`
	AllowedMethods string `yaml:"allowed_methods"`
	AllowedHeaders string `yaml:"allowed_headers"`
}

type StorageConfig struct {
	MongoURI      string        `yaml:"mongo_uri"`
	MongoDatabase string        `yaml:"mongo_database"`
	RedisAddr     string        `yaml:"redis_addr"`
	ReportTTL     time.Duration `yaml:"report_ttl"`
}

type SessionConfig struct {
	JWTSecret string `yaml:"-"`
	// EphemeralSecret is set when JWTSecret was generated at load time; tokens
	// then stop validating after a restart.
	EphemeralSecret bool          `yaml:"-"`
	TTL             time.Duration `yaml:"ttl"`
	CookieName      string        `yaml:"cookie_name"`
}

type UIConfig struct {
	MaxInputChars int  `yaml:"max_input_chars"`
	Export        bool `yaml:"export"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 30 * time.Second,
			CORS: CORSConfig{
				AllowedOrigins: "*",
				AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
				AllowedHeaders: "Content-Type, Authorization",
			},
		},
		AI: DefaultAIConfig(),
		Storage: StorageConfig{
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "winugly",
			RedisAddr:     "localhost:6379",
			ReportTTL:     24 * time.Hour,
		},
		Session: SessionConfig{
			TTL:        30 * 24 * time.Hour,
			CookieName: "winugly_session",
		},
		UI: UIConfig{
			MaxInputChars: 2000,
			Export:        true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. path may be empty, in which case WINUGLY_CONFIG is
// consulted; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("WINUGLY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if cfg.Session.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.Session.JWTSecret = secret
		cfg.Session.EphemeralSecret = true
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Validate checks the settings required before any input is accepted
func (c *Config) Validate() error {
	if !c.AI.IsEnabled() {
		return ErrMissingAPIKey
	}
	if c.UI.MaxInputChars <= 0 {
		return fmt.Errorf("ui.max_input_chars must be positive, got %d", c.UI.MaxInputChars)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	if len(c.Session.JWTSecret) < minJWTSecretLen {
		return ErrWeakJWTSecret
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AI.applyEnv()

	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.CORS.AllowedOrigins = getEnvOrDefault("CORS_ALLOWED_ORIGINS", c.Server.CORS.AllowedOrigins)
	c.Server.CORS.AllowedMethods = getEnvOrDefault("CORS_ALLOWED_METHODS", c.Server.CORS.AllowedMethods)
	c.Server.CORS.AllowedHeaders = getEnvOrDefault("CORS_ALLOWED_HEADERS", c.Server.CORS.AllowedHeaders)

	c.Storage.MongoURI = getEnvOrDefault("MONGO_URI", c.Storage.MongoURI)
	c.Storage.MongoDatabase = getEnvOrDefault("MONGO_DB", c.Storage.MongoDatabase)
	// Remove redis:// prefix if present
	c.Storage.RedisAddr = strings.TrimPrefix(getEnvOrDefault("REDIS_URI", c.Storage.RedisAddr), "redis://")

	c.Session.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Session.JWTSecret)

	c.UI.MaxInputChars = getIntOrDefault("MAX_INPUT_CHARS", c.UI.MaxInputChars)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Development = getBoolOrDefault("LOG_DEV", c.Log.Development)
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
