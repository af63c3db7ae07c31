package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "PODIUM_"
	envConfigFile = envPrefix + "CONFIG"
	envDotEnvFile = envPrefix + "ENV_FILE"
	defaultDotEnv = ".env"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New())
//  2. a dotenv file: PODIUM_ENV_FILE, or ./.env when present
//  3. a YAML file if PODIUM_CONFIG is set
//  4. env (prefix PODIUM_)
//
// The result is validated before it is returned.
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if err := loadDotEnv(k); err != nil {
		return nil, err
	}

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PODIUM_DATA_PATH -> data_path; underscores are kept to match the koanf tags.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
}

// loadDotEnv reads the dotenv layer. An explicitly named file must exist;
// the default ./.env is optional.
func loadDotEnv(k *koanf.Koanf) error {
	path, explicit := os.LookupEnv(envDotEnvFile)
	if !explicit || path == "" {
		path, explicit = defaultDotEnv, false
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	if err := k.Load(dotEnv(values), nil); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}

// dotEnv exposes parsed dotenv pairs as a koanf provider. Only PODIUM_
// keys are taken.
type dotEnv map[string]string

func (d dotEnv) ReadBytes() ([]byte, error) {
	return nil, errors.New("dotenv provider does not support ReadBytes")
}

func (d dotEnv) Read() (map[string]any, error) {
	out := make(map[string]any, len(d))
	for key, val := range d {
		if !strings.HasPrefix(key, envPrefix) || key == envConfigFile || key == envDotEnvFile {
			continue
		}
		out[envKey(key)] = val
	}
	return out, nil
}
