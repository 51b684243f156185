package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/blockmark/pkg/config"
)

// envVarPrefix is the prefix for all blockmark environment variables.
const envVarPrefix = "BLOCKMARK_"

// envMapping applies one environment variable to a configuration.
type envMapping struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolSetter(field func(cfg *config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PRETTY": {
		description: "Pretty-print rendered HTML: true or false",
		apply:       boolSetter(func(cfg *config.Config) **bool { return &cfg.Pretty }),
	},
	"SOURCE_INDICES": {
		description: "Annotate blocks with data-src offsets: true or false",
		apply:       boolSetter(func(cfg *config.Config) **bool { return &cfg.SourceIndices }),
	},
	"DETECT_LANGUAGE": {
		description: "Tag fenced code with a detected language: true or false",
		apply:       boolSetter(func(cfg *config.Config) **bool { return &cfg.DetectLanguage }),
	},
	"TYPOGRAPHICS": {
		description: "Replace --, ... and (c) with typographic entities: true or false",
		apply:       boolSetter(func(cfg *config.Config) **bool { return &cfg.Inline.Typographics }),
	},
	"HARD_WRAPS": {
		description: "Turn line breaks inside paragraphs into <br/>: true or false",
		apply:       boolSetter(func(cfg *config.Config) **bool { return &cfg.Inline.HardWraps }),
	},
	"STAGED": {
		description: "Render through the staged driver: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			cfg.Staged = b
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			i, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = i
			return nil
		},
	},
	"FORMAT": {
		description: "Summary format: text or json",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"OUT_DIR": {
		description: "Directory rendered files are written to",
		apply: func(cfg *config.Config, value string) error {
			cfg.Output.Dir = value
			return nil
		},
	},
	"EXT": {
		description: "Extension of rendered files, including the dot",
		apply: func(cfg *config.Config, value string) error {
			cfg.Output.Extension = value
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated list of source extensions",
		apply: func(cfg *config.Config, value string) error {
			cfg.Extensions = parseSliceValue(value)
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with BLOCKMARK_ (e.g., BLOCKMARK_PRETTY).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// envSuffixes returns the mapping keys in a stable order.
func envSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
