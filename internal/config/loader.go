package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

const configDirEnv = "WNDKIT_CONFIG_DIR"

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv(configDirEnv); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		if xdgConfigDir := os.Getenv("XDG_CONFIG_HOME"); xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "wndkit", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "wndkit", "config.toml")
	}
	return ""
}

func GetConfigDir() string {
	configFile := getConfigFilePath()
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}

func loadDefaultConfig() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: no embedded default config found: %v\n", err)
		os.Exit(1)
	}

	config := &Config{}
	if err := config.Load(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to load embedded default config: %v\n", err)
		os.Exit(1)
	}
	return config
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	return loadDefaultConfig()
}

// LoadConfigFile reads the user config file. A missing file is not an
// error and yields nil data.
func LoadConfigFile() ([]byte, error) {
	configFile := getConfigFilePath()
	if configFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFile, err)
	}
	return data, nil
}

// LoadFile overlays the config file at path on c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := c.Load(string(data)); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadTheme(data []byte, base map[string]Color) (map[string]Color, error) {
	colors := maps.Clone(base)
	if colors == nil {
		colors = make(map[string]Color)
	}
	if err := toml.Unmarshal(data, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

func LoadEmbeddedTheme(name string) (map[string]Color, error) {
	data, err := configFS.ReadFile("default/" + name + ".toml")
	if err != nil {
		return nil, err
	}
	return loadTheme(data, nil)
}

// LoadTheme reads themes/<name>.toml from the config directory over base.
func LoadTheme(name string, base map[string]Color) (map[string]Color, error) {
	themeFile := filepath.Join(GetConfigDir(), "themes", name+".toml")
	data, err := os.ReadFile(themeFile)
	if err != nil {
		return nil, err
	}
	return loadTheme(data, base)
}

// ResolveColors picks the theme for the terminal background and applies
// the [ui.colors] overrides of c on top of it. Embedded themes are used as
// the base of user themes with the same name.
func (c *Config) ResolveColors(dark bool) (map[string]Color, error) {
	name := c.UI.Theme.Name(dark)
	fallback := "dark"
	if !dark {
		fallback = "light"
	}
	if name == "" {
		name = fallback
	}

	colors, err := LoadEmbeddedTheme(name)
	if err != nil {
		if colors, err = LoadEmbeddedTheme(fallback); err != nil {
			return nil, err
		}
	}
	if user, err := LoadTheme(name, colors); err == nil {
		colors = user
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading theme %s: %w", name, err)
	}
	maps.Copy(colors, c.UI.Colors)
	return colors, nil
}
