package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Environment variables read outside the QUARRY_ namespace.
const (
	ProjectIDEnv   = "GCP_PROJECT_ID"
	CredentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"
)

// findConfigFile finds the config file to use.
// Priority: explicit path > quarry.yaml > quarry.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"quarry.yaml", "quarry.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from defaults, config file, environment
// variables, and flags, in increasing priority.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"project_id": "",
		"location":   DefaultLocation,
		"datasets":   DefaultDatasets,
		"backend":    DefaultBackend,
		"database":   "",
		"output":     DefaultOutput,
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present. A missing explicit file is an error;
	// a missing default file is not.
	if path := findConfigFile(cfgFile); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment variables (QUARRY_ prefix).
	// Transform: QUARRY_PROJECT_ID -> project_id
	if err := k.Load(env.Provider("QUARRY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QUARRY_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// The CLI uses --project for brevity; the config key is
			// project_id.
			if key == "project" {
				return "project_id", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// The project ID predates the QUARRY_ namespace: honor the plain
	// GCP_PROJECT_ID variable, then fall back to the demo project.
	if cfg.ProjectID == "" {
		cfg.ProjectID = os.Getenv(ProjectIDEnv)
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = DefaultProjectID
	}

	cfg.CredentialsFile = os.Getenv(CredentialsEnv)

	return &cfg, nil
}
