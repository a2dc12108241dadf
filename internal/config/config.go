package config

import (
	"fmt"
	"os"
)

// Config holds everything the binaries read from the environment.
// Field names mirror the env var names on purpose.
type Config struct {
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	DB_HOST     string
	DB_PORT     string

	KAFKA_TOPIC  string
	KAFKA_BROKER string

	RABBITMQ_USER     string
	RABBITMQ_PASSWORD string
	RABBITMQ_HOST     string
	RABBITMQ_PORT     string

	TEMPORAL_HOST_PORT string
	TEMPORAL_TASKQUEUE string

	JWT_SECRET     string
	STRIPE_API_KEY string
	HTTP_ADDR      string
}

// LoadConfig reads the environment. Missing values stay empty, each
// consumer decides whether that is fatal.
func LoadConfig() *Config {
	return &Config{
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),

		KAFKA_TOPIC:  os.Getenv("KAFKA_TOPIC"),
		KAFKA_BROKER: os.Getenv("KAFKA_BROKER"),

		RABBITMQ_USER:     os.Getenv("RABBITMQ_USER"),
		RABBITMQ_PASSWORD: os.Getenv("RABBITMQ_PASSWORD"),
		RABBITMQ_HOST:     os.Getenv("RABBITMQ_HOST"),
		RABBITMQ_PORT:     os.Getenv("RABBITMQ_PORT"),

		TEMPORAL_HOST_PORT: getEnv("TEMPORAL_HOST_PORT", "localhost:7233"),
		TEMPORAL_TASKQUEUE: getEnv("TEMPORAL_TASKQUEUE", "shipment-task-queue"),

		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		STRIPE_API_KEY: os.Getenv("STRIPE_API_KEY"),
		HTTP_ADDR:      getEnv("HTTP_ADDR", ":8080"),
	}
}

// GetDBURL formats a PostgreSQL connection string.
func (c *Config) GetDBURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME)
}

// GetRabbitMQURL formats an AMQP connection string with the standard
// defaults filled in, a missing host must not crash the binaries.
func (c *Config) GetRabbitMQURL() string {
	host := c.RABBITMQ_HOST
	if host == "" {
		host = "localhost"
	}
	port := c.RABBITMQ_PORT
	if port == "" {
		port = "5672"
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.RABBITMQ_USER, c.RABBITMQ_PASSWORD, host, port)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
