package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string
	BaseURL       string
	LogLevel      string

	DatabaseURL string

	JWTSecret []byte

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		ServerAddress: EnvDefault("SERVER_ADDRESS", ":8080"),
		BaseURL:       EnvDefault("BASE_URL", "http://localhost:8080"),
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: EnvDefault("MAIL_FROM_NAME", "PhotoShare"),

		CloudinaryName:   os.Getenv("CLOUDINARY_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
