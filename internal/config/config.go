package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	DataDir     string `mapstructure:"DATA_DIR"`
	BaselineURL string `mapstructure:"BASELINE_URL"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`

	MaxCrawlDepth int     `mapstructure:"MAX_CRAWL_DEPTH"`
	MaxPages      int     `mapstructure:"MAX_PAGES"`
	CrawlTimeout  int     `mapstructure:"CRAWL_TIMEOUT"` // per-page, seconds
	CrawlRate     float64 `mapstructure:"CRAWL_RATE"`    // fetches per second
	UserAgent     string  `mapstructure:"USER_AGENT"`

	AnalysisTTLHours int `mapstructure:"ANALYSIS_TTL_HOURS"`

	LLMAPIURL        string `mapstructure:"LLM_API_URL"`
	LLMAPIKey        string `mapstructure:"LLM_API_KEY"`
	LLMModel         string `mapstructure:"LLM_MODEL"`
	NarrativeTimeout int    `mapstructure:"NARRATIVE_TIMEOUT"` // seconds
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("BASELINE_URL", "https://www.bajajlifeinsurance.com/")
	viper.SetDefault("MAX_CRAWL_DEPTH", 10)
	viper.SetDefault("MAX_PAGES", 6)
	viper.SetDefault("CRAWL_TIMEOUT", 15)
	viper.SetDefault("CRAWL_RATE", 2.0)
	viper.SetDefault("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36")
	viper.SetDefault("ANALYSIS_TTL_HOURS", 48)
	viper.SetDefault("LLM_MODEL", "llama-3.3-70b-versatile")
	viper.SetDefault("NARRATIVE_TIMEOUT", 45)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
