package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

model:
  provider: "ollama"
  name: "gemma3:27b-it-qat"
  # base_url: "http://localhost:11434"

repeats: 4

categories: ["good", "bad"]
default_category: "bad"

metrics:
  - id: shoulder
    label: "Shoulder Position"
  - id: spine
    label: "Spine Alignment"

inputs:
  - path: "test_imgs/good.jpg"
  - path: "test_imgs/bad.jpg"

retry:
  max_attempts: 1
  base_ms: 500
  max_ms: 10000
  factor: 2.0

request_timeout_seconds: 0

prompt: |-
  You are a posture assessment system analyzing webcam images. Evaluate the following aspects of posture:

  1. Shoulder Position (0-100): 0 means severely slouched shoulders, 100 means perfectly aligned shoulders.
  2. Spine Alignment (0-100): 0 means severely hunched/curved spine, 100 means ideal vertical alignment.

  Provide your assessment in this exact format only:
  Shoulder Position: [score]
  Spine Alignment: [score]

  Do not include any other text, explanations, or commentary in your response.
`

// Scaffold writes the reference config to configPath, refusing to overwrite.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
