package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
		// Vector holds the DSN of the pgvector label index.
		Vector struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"vector"`
	} `mapstructure:"database"`

	LLM struct {
		APIKey      string  `mapstructure:"api_key"`
		BaseURL     string  `mapstructure:"base_url"`
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
		// Prompt is either inline template content or a path to a file.
		Prompt string `mapstructure:"prompt"`
	} `mapstructure:"llm"`

	Embedding struct {
		OpenaiApiKey    string `mapstructure:"openai_api_key"`
		Model           string `mapstructure:"model"`
		GoogleApiKey    string `mapstructure:"google_api_key"`
		GeminiModelName string `mapstructure:"gemini_model_name"`
	} `mapstructure:"embedding"`

	Ads struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"ads"`

	Pipeline struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"pipeline"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// Well-known environment variables, bound without a prefix.
	viper.BindEnv("llm.api_key", "OPENAI_API_KEY")
	viper.BindEnv("llm.base_url", "OPENAI_API_BASE")
	viper.BindEnv("embedding.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("embedding.google_api_key", "GEMINI_API_KEY")
	viper.BindEnv("ads.url", "ADS_SERVICE_URL")

	viper.SetDefault("llm.model", "accounts/fireworks/models/llama4-scout-instruct-basic")
	viper.SetDefault("llm.temperature", 0.4)
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.gemini_model_name", "models/text-embedding-004")
	viper.SetDefault("pipeline.workers", 8)
	viper.SetDefault("server.addr", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("worker.concurrency", 4)

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
