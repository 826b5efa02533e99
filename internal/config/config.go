package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         int      `envconfig:"PORT" default:"5000"`
	DBHost       string   `envconfig:"DB_HOST" default:"localhost"`
	DBPort       int      `envconfig:"DB_PORT" default:"5432"`
	DBUser       string   `envconfig:"DB_USER" default:"dhakacart"`
	DBPassword   string   `envconfig:"DB_PASSWORD" default:"dhakacart123"`
	DBName       string   `envconfig:"DB_NAME" default:"dhakacart_db"`
	RedisHost    string   `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort    int      `envconfig:"REDIS_PORT" default:"6379"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	ServiceName  string   `envconfig:"SERVICE_NAME" default:"dhakacart-api"`
	Environment  string   `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// EventsEnabled reports whether order events should be published.
// An empty broker list disables the producer entirely.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
