package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	RateAPI RateAPIConfig
	History HistoryConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RateAPIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

type HistoryConfig struct {
	MaxWindowDays     int
	Workers           int
	RequestsPerSecond float64
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		RateAPI: RateAPIConfig{
			BaseURL:       getEnvString("RATE_API_BASE_URL", "https://open.er-api.com/v6"),
			Timeout:       getEnvDuration("RATE_API_TIMEOUT", 10*time.Second),
			MaxRetries:    getEnvInt("RATE_API_MAX_RETRIES", 0),
			RetryInterval: getEnvDuration("RATE_API_RETRY_INTERVAL", 500*time.Millisecond),
		},
		History: HistoryConfig{
			MaxWindowDays:     getEnvInt("HISTORY_MAX_WINDOW_DAYS", 30),
			Workers:           getEnvInt("HISTORY_WORKERS", 6),
			RequestsPerSecond: getEnvFloat("HISTORY_REQUESTS_PER_SECOND", 8),
		},
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %g\n", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid duration for %s, using default: %s\n", key, defaultValue)
		return defaultValue
	}

	return value
}
