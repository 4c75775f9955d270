package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type ExchangeRateAPI struct {
	URL string `mapstructure:"url"`
}

type Queue struct {
	MaxAttempts    int `mapstructure:"max_attempts"`
	BackoffBaseMs  int `mapstructure:"backoff_base_ms"`
	CleanupGraceHr int `mapstructure:"cleanup_grace_hours"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	Redis           Redis           `mapstructure:"redis"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Queue           Queue           `mapstructure:"queue"`
	Logging         Logging         `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is a local development convenience, absence is fine
	_ = godotenv.Load()

	viper.SetDefault("http_server.port", "3000")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("queue.max_attempts", 3)
	viper.SetDefault("queue.backoff_base_ms", 5000)
	viper.SetDefault("queue.cleanup_grace_hours", 24)
	viper.SetDefault("logging.level", "info")

	_ = viper.BindEnv("http_server.port", "PORT")
	_ = viper.BindEnv("exchange_rate_api.url", "EXCHANGE_API_URL")

	// redis env vars
	_ = viper.BindEnv("redis.host", "REDIS_HOST")
	_ = viper.BindEnv("redis.port", "REDIS_PORT")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")

	// queue env vars
	_ = viper.BindEnv("queue.max_attempts", "QUEUE_MAX_ATTEMPTS")
	_ = viper.BindEnv("queue.backoff_base_ms", "QUEUE_BACKOFF_BASE_MS")
	_ = viper.BindEnv("queue.cleanup_grace_hours", "QUEUE_CLEANUP_GRACE_HOURS")

	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
