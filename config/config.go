package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config fetches a key from the environment. .env is optional, plain
// environment variables still work without it.
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}
