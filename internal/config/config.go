package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidPort        = errors.New("PORT must be a number between 1 and 65535")
	ErrInvalidConcurrency = errors.New("RUN_CONCURRENCY must be positive")
	ErrInvalidTimeout     = errors.New("timeouts must be positive")
	ErrInvalidRateLimit   = errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
)

type Config struct {
	HTTP      HTTPConfig
	Telegram  TelegramConfig
	Database  DatabaseConfig
	ValueSERP ProviderConfig
	SerpAPI   ProviderConfig
	Search    SearchConfig
	Probe     ProbeConfig
	Routing   RoutingConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Run       RunConfig
}

type HTTPConfig struct {
	Port string
}

// TelegramConfig: пустой токен - бот не запускается.
type TelegramConfig struct {
	Token string
	Debug bool
}

// DatabaseConfig: пустой URL - история запусков выключена.
type DatabaseConfig struct {
	URL string
}

type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

type SearchConfig struct {
	Timeout  time.Duration
	Location string
	Country  string
	Language string
}

type ProbeConfig struct {
	Timeout     time.Duration
	SlowTimeout time.Duration
}

type RoutingConfig struct {
	File string
}

type LogConfig struct {
	Level string
	// Format: json или console
	Format string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type RunConfig struct {
	Concurrency int
	Pause       time.Duration
	MaxPairs    int
}

func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port: getEnvOrDefault("PORT", "10000"),
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug: getEnvBoolOrDefault("TELEGRAM_DEBUG", false),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		ValueSERP: ProviderConfig{
			APIKey:  os.Getenv("VALUESERP_KEY"),
			BaseURL: os.Getenv("VALUESERP_BASE_URL"),
		},
		SerpAPI: ProviderConfig{
			APIKey:  os.Getenv("SERPAPI_KEY"),
			BaseURL: os.Getenv("SERPAPI_BASE_URL"),
		},
		Search: SearchConfig{
			Timeout:  time.Duration(getEnvIntOrDefault("SEARCH_TIMEOUT_SEC", 9)) * time.Second,
			Location: getEnvOrDefault("SEARCH_LOCATION", "Italy"),
			Country:  getEnvOrDefault("SEARCH_COUNTRY", "it"),
			Language: getEnvOrDefault("SEARCH_LANGUAGE", "it"),
		},
		Probe: ProbeConfig{
			Timeout:     time.Duration(getEnvIntOrDefault("PROBE_TIMEOUT_MS", 8000)) * time.Millisecond,
			SlowTimeout: time.Duration(getEnvIntOrDefault("PROBE_SLOW_TIMEOUT_MS", 22000)) * time.Millisecond,
		},
		Routing: RoutingConfig{
			File: os.Getenv("ROUTING_FILE"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: os.Getenv("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		},
		Run: RunConfig{
			Concurrency: getEnvIntOrDefault("RUN_CONCURRENCY", 2),
			Pause:       time.Duration(getEnvIntOrDefault("RUN_PAUSE_MS", 0)) * time.Millisecond,
			MaxPairs:    getEnvIntOrDefault("RUN_MAX_PAIRS", 200),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.HTTP.Port)
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	if c.Run.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.Search.Timeout <= 0 || c.Probe.Timeout <= 0 || c.Probe.SlowTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// HasStorage - включена ли история запусков.
func (c *Config) HasStorage() bool { return c.Database.URL != "" }

// HasTelegram - запускать ли бота.
func (c *Config) HasTelegram() bool { return c.Telegram.Token != "" }

// loadEnvFiles: ENV_FILE, иначе .env.local и .env. Отсутствие файлов не ошибка,
// уже выставленные переменные окружения не перетираются.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
