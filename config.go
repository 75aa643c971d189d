package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const appName = "legotris"

type Config struct {
	Theme      string `json:"theme"`
	Sound      bool   `json:"sound"`
	Music      bool   `json:"music"`
	MusicFile  string `json:"musicFile,omitempty"`
	Volume     int    `json:"volume"`
	Shadow     bool   `json:"shadow"`
	Animations bool   `json:"animations"`
	Scale      int    `json:"scale"`
	Sync       bool   `json:"sync"`
}

func defaultConfig() Config {
	return Config{
		Theme:      themes[0].Name,
		Sound:      true,
		Music:      false,
		Volume:     70,
		Shadow:     true,
		Animations: true,
		Scale:      1,
		Sync:       true,
	}
}

// loadConfig reads path over the defaults. A missing file yields the
// defaults without error.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), err
	}
	return config.normalized(), nil
}

func saveConfig(path string, config Config) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(config.normalized(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) normalized() Config {
	if themeIndexByName(c.Theme) < 0 {
		c.Theme = themes[0].Name
	}
	c.Scale = clampScale(c.Scale)
	c.Volume = clampVolumePercent(c.Volume)
	c.MusicFile = strings.TrimSpace(c.MusicFile)
	return c
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
