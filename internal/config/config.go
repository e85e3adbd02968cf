package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	// IPSalt is mixed into visitor address hashes so stored identities
	// cannot be reversed to raw addresses.
	IPSalt string

	// RedisURL enables the cross-process realtime relay when set.
	// Empty means events are fanned out in-process only.
	RedisURL string

	LikeRateLimit     int
	CommentRateLimit  int
	RateWindowSeconds int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}

	ipSalt := os.Getenv("IP_SALT")
	if ipSalt == "" {
		log.Println("IP_SALT not set, using default salt (change in production!)")
		ipSalt = "change-me"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,

		IPSalt: ipSalt,

		RedisURL: os.Getenv("REDIS_URL"),

		LikeRateLimit:     envInt("LIKE_RATE_LIMIT", 10),
		CommentRateLimit:  envInt("COMMENT_RATE_LIMIT", 5),
		RateWindowSeconds: envInt("RATE_WINDOW_SECONDS", 60),
	}, nil
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
