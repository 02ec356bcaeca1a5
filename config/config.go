package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads .env.test from the nearest parent directory that has one
// and then builds AppConfig from it.
func LoadTestConfig() error {
	projectRoot, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, ".env.test")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			return fmt.Errorf("could not find .env.test file")
		}
		projectRoot = parent
	}

	if err := godotenv.Load(filepath.Join(projectRoot, ".env.test")); err != nil {
		return fmt.Errorf("error loading .env.test: %w", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET not set in .env.test")
	}

	LoadConfig()
	return nil
}
