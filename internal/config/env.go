package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the project root or any parent
// directory, so DEPSORT_ overrides can live alongside the project. A
// missing .env is fine.
func LoadEnv(root string) error {
	path, found := findEnvFile(root)
	if !found {
		return nil
	}
	return godotenv.Load(path)
}

// findEnvFile walks from start toward the filesystem root looking for
// a .env file.
func findEnvFile(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ".env")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
