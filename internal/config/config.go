package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port         string
	StoreBackend string
	SeedFile     string
	LinkScheme   string
	CountryCode  string
	LinkGreeting string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:         getEnv("PORT", "50001"),
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		SeedFile:     getEnv("SEED_FILE", ""),
		LinkScheme:   getEnv("LINK_SCHEME", "whatsapp"),
		CountryCode:  getEnv("COUNTRY_CODE", "91"),
		LinkGreeting: getEnv("LINK_GREETING", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
