package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files. ENV_PATH, when set, replaces the
// default paths. A missing file is an error only in local mode (env "" or "local").
// Variables already present in the environment win over file values.
func LoadDotEnv(env string, defaultPaths ...string) error {
	paths := defaultPaths
	if p := os.Getenv("ENV_PATH"); p != "" {
		paths = []string{p}
	} else {
		slog.Info("ENV_PATH is not set, using default paths", "defaultPaths", defaultPaths)
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}

	if len(existing) == 0 {
		if env == "local" || env == "" {
			slog.Warn("No .env file found", "paths", paths)
			return os.ErrNotExist
		}
		slog.Debug("Skipping .env ...")
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		slog.Error("Failed to load environment variables", "error", err)
		return err
	}

	return nil
}
