package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a local .env file when one exists. Real environment
// variables always win over values in the file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load .env file: %v", err)
			return
		}
		log.Println("No .env file found, using process environment")
	}
}

// GetEnv returns the value of key or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
