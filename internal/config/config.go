package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	RedisAddr        string
	RedisPassword    string
	ConsulAddress    string
	ServiceName      string
	ServiceAddress   string
	STTBaseURL       string
	STTTimeoutSec    int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:             getEnvOrDefault("PORT", "6667"),
		GinMode:          getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "progress_service"),
		RabbitMQURI:      getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:    getEnvOrDefault("REDIS_PWD", ""),
		ConsulAddress:    getEnvOrDefault("CONSUL_ADDR", ""),
		ServiceName:      getEnvOrDefault("SERVICE_NAME", "progress-service"),
		ServiceAddress:   getEnvOrDefault("SERVICE_ADDRESS", "localhost"),
		STTBaseURL:       getEnvOrDefault("STT_BASE_URL", "http://localhost:8001"),
		STTTimeoutSec:    getEnvIntOrDefault("STT_TIMEOUT_SECONDS", 15),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
