// Package config provides configuration management for the advisor.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Resources ResourcesConfig `mapstructure:"resources"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig holds the advice database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ResourcesConfig holds the directory of upstream context artifacts.
type ResourcesConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LLMConfig holds the model service configuration. APIKey and BaseURL are
// required: their absence is a startup-time configuration error, never a
// per-call failure.
type LLMConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists (don't error if not found)
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Printf("Warning: could not load %s: %v\n", envFile, err)
			}
		}
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("Warning: could not read config file: %v\n", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("Warning: could not read config file: %v\n", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects configurations the process cannot start with.
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("model service credential is required (OPENAI_API_KEY)")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("model service endpoint is required (OPENAI_BASE_URL)")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	// Storage defaults
	v.SetDefault("database.path", "data.db")
	v.SetDefault("resources.dir", "CODE_GEN/resources")

	// Server defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	// LLM defaults; the reasoning tier is fixed in the prompt, not here
	v.SetDefault("llm.model", "gpt-5")
	v.SetDefault("llm.request_timeout", "120s")
}

// bindEnvVars binds environment variables to config keys.
func bindEnvVars(v *viper.Viper) {
	// App
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.log_level", "LOG_LEVEL")

	// Storage
	_ = v.BindEnv("database.path", "DB_PATH")
	_ = v.BindEnv("resources.dir", "RESOURCES_DIR")

	// Server
	_ = v.BindEnv("server.port", "SERVER_PORT")

	// LLM
	_ = v.BindEnv("llm.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("llm.model", "OPENAI_MODEL")
	_ = v.BindEnv("llm.request_timeout", "LLM_REQUEST_TIMEOUT")
}

// IsDevelopment returns true if the app is in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if the app is in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
