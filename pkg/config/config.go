// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the
// application.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot.
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string

	// Guild configuration document
	ConfigFile string

	// MongoDB activity archive (disabled when MongoDBURL is empty)
	MongoDBURL string
	DBName     string

	// MQTT telemetry
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web server
	Port string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string
}

var (
	Version   = "Dev-Local"
	BuildTime = "오늘"
)

var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading.
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		BotToken:   getEnv("botToken", ""),
		DevGuildID: getEnv("devGuildId", ""),

		ConfigFile: getEnv("configFile", "config.json"),

		MongoDBURL: getEnv("mongodbUrl", ""),
		DBName:     getEnv("dbName", "ParangBot"),

		MQTTHost:     getEnv("MQTT_Host", ""),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		Port: getEnv("PORT", "3000"),

		Environment: getEnv("enviroment", "dev"),

		ErrorWebhook: getEnv("errorWebhook", ""),
		LogsWebhook:  getEnv("logsWebhook", ""),
	}
}

// Load initializes the configuration from environment variables.
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration.
func Get() *Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProd returns true if the environment is production.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// ArchiveEnabled reports whether the MongoDB activity archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.MongoDBURL != ""
}

// MQTTEnabled reports whether MQTT telemetry is configured.
func (c *Config) MQTTEnabled() bool {
	return c.MQTTHost != ""
}
