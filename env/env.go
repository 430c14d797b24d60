package env

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Load reads the given dotenv files (".env" when none are given) into the
// process environment without overriding variables that are already set.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Get returns the variable, loading .env on first use.
func Get(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	loadOnce.Do(func() {
		_ = Load()
	})

	return os.Getenv(key)
}
