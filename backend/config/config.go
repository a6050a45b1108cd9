package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	TokenTTL     time.Duration
	ServerPort   string
	AllowOrigins string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "72"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 72
	}

	return &Config{
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "edugpt"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		TokenTTL:     time.Duration(ttlHours) * time.Hour,
		ServerPort:   getEnv("SERVER_PORT", "3000"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "http://127.0.0.1:5501, http://localhost:5501, http://localhost:3000"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
