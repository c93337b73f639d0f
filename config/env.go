package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys read by ApplyEnv.
const (
	EnvDebug     = "TRACEABLE_DEBUG"
	EnvAssetsDir = "TRACEABLE_ASSETS_DIR"
	EnvScript    = "TRACEABLE_CATEGORIZER_SCRIPT"
	EnvDelay     = "TRACEABLE_PROCESSING_DELAY"
)

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load env %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg from TRACEABLE_* variables. Malformed values are
// reported and leave the field unchanged.
func ApplyEnv(cfg *Config) error {
	var errs []error
	if v, ok := os.LookupEnv(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvDebug, err))
		} else {
			cfg.Log.Debug = b
		}
	}
	if v, ok := os.LookupEnv(EnvAssetsDir); ok {
		cfg.Ingest.AssetsDir = v
	}
	if v, ok := os.LookupEnv(EnvScript); ok {
		cfg.Ingest.Script = v
	}
	if v, ok := os.LookupEnv(EnvDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvDelay, err))
		} else if d >= 0 {
			cfg.Ingest.Delay = d
		}
	}
	return errors.Join(errs...)
}
