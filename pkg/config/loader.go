package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Load parses environment variables into cfg, which uses `env` struct tags.
// Values from an optional .env file in the working directory are loaded first;
// variables already set in the environment take precedence.
func Load(cfg any) error {
	return LoadWithFiles(cfg, ".env")
}

// LoadWithFiles is Load with explicit dotenv files. Missing files are skipped.
func LoadWithFiles(cfg any, files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
