package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisStateDB         int    `mapstructure:"REDIS_STATE_DB"`
	RedisHistoryDB       int    `mapstructure:"REDIS_HISTORY_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Gemini extractor.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	SystemPrompt string `mapstructure:"SYSTEM_PROMPT"`

	// Messaging gateway (outbound transport).
	GatewayURL string `mapstructure:"GATEWAY_URL"`

	// Admin surface.
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking engine tuning.
	Timezone                string `mapstructure:"TIMEZONE"`
	ReminderLeadMinutes     int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	ConversationTTLMinutes  int    `mapstructure:"CONVERSATION_TTL_MINUTES"`
	SettingsCacheTTLSeconds int    `mapstructure:"SETTINGS_CACHE_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_STATE_DB", 1)
	viper.SetDefault("REDIS_HISTORY_DB", 2)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("SYSTEM_PROMPT", "")
	viper.SetDefault("GATEWAY_URL", "http://localhost:3000")
	viper.SetDefault("ADMIN_TOKEN", "admin")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 180)
	viper.SetDefault("CONVERSATION_TTL_MINUTES", 30)
	viper.SetDefault("SETTINGS_CACHE_TTL_SECONDS", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Location resolves the configured business timezone. All slot math and
// date parsing happens in this single zone.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", AppConfig.Timezone, err)
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
