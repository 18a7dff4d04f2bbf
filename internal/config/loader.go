package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment variables. A double underscore separates
// nested keys: RULEGEN_COMPLETION__API_KEY sets completion.api_key.
const EnvPrefix = "RULEGEN_"

// configFileNames are looked up in dir when no file is given explicitly.
var configFileNames = []string{"rulegen.yaml", "rulegen.yml"}

// findConfigFile finds the config file to use.
// Priority: explicit path > rulegen.yaml > rulegen.yml
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Load reads the configuration. cfgFile may be empty to search the working
// directory; flags may be nil. Only flags that were explicitly set override
// other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadFrom(".", cfgFile, flags)
}

// LoadFrom is Load with the config file searched in dir.
func LoadFrom(dir, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile, dir)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: RULEGEN_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// flagKey maps kebab-case flags to config keys. Flags of nested sections are
// prefixed with the section name: --completion-url sets completion.url.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")

	for _, section := range []string{"completion", "match"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}

	return key
}
