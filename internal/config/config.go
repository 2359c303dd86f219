package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/create-react-tw/create-react-tw/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyDependencyMode  = "dependency_mode"
	KeyDirectives      = "directives"
	KeyInstaller       = "installer"
	KeyMigrateLockfile = "migrate_lockfile"
	KeySkipInstall     = "skip_install"
	KeyLaunchDevServer = "launch_dev_server"
)

// defaults holds the built-in value of every key.
var defaults = map[string]any{
	KeyDependencyMode:  "merge",
	KeyDirectives:      "standard",
	KeyInstaller:       "bun",
	KeyMigrateLockfile: true,
	KeySkipInstall:     false,
	KeyLaunchDevServer: false,
}

// Keys returns every known key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Dir returns the path to the config directory (~/.create-react-tw/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() error {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is the normal first-run state.
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set validates a key-value pair, then writes it to the config file.
func Set(key, value string) error {
	v, err := normalize(key, value)
	if err != nil {
		return err
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, v)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// allowed lists the accepted values of the enumerated string keys.
var allowed = map[string][]string{
	KeyDependencyMode: {"merge", "replace"},
	KeyDirectives:     {"standard", "extended"},
	KeyInstaller:      {"bun", "pnpm", "yarn", "none"},
}

// normalize checks value against key's type and returns the value to store.
func normalize(key, value string) (any, error) {
	def, ok := defaults[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}

	if _, isBool := def.(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	}

	value = strings.ToLower(strings.TrimSpace(value))
	if opts := allowed[key]; !slices.Contains(opts, value) {
		return nil, fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(opts, ", "), value)
	}
	return value, nil
}
