package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabasePath   string
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string

	// Low-stock digest email. Sent once per day at DigestHour (0-23) when
	// mailgun is configured and a recipient is set.
	DigestRecipient string
	DigestHour      int
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:   getEnv("DATABASE_PATH", "homestock.db"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "production"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),

		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "noreply@localhost"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "Homestock"),

		DigestRecipient: getEnv("DIGEST_RECIPIENT", ""),
		DigestHour:      getEnvInt("DIGEST_HOUR", 8),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
