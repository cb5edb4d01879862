package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"posturebench/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadedConfig is a normalized but not yet validated config with the
// directory its input paths resolve against.
type loadedConfig struct {
	cfg     config.Config
	baseDir string
	path    string
}

// readConfig loads the config at configPath, or the discovered one. When no
// flag is given and none is found, the reference config rooted at CWD is used.
func readConfig(configPath string) (loadedConfig, error) {
	resolved, err := resolveConfigPath(configPath)
	if errors.Is(err, config.ErrNotFound) && strings.TrimSpace(configPath) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return loadedConfig{}, fmt.Errorf("get working directory: %w", err)
		}
		return loadedConfig{cfg: config.Default(), baseDir: wd}, nil
	}
	if err != nil {
		return loadedConfig{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return loadedConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.ParseConfig(data)
	if err != nil {
		return loadedConfig{}, err
	}
	config.Normalize(&cfg)
	return loadedConfig{cfg: cfg, baseDir: config.BaseDirFromConfigPath(resolved), path: resolved}, nil
}
