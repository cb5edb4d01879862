package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"posturebench/internal/config"
)

func TestInitCommandCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".posturebench", "config.yml")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", configPath, "--yes"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Wrote") {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	data, readErr := os.ReadFile(configPath)
	if readErr != nil {
		t.Fatalf("expected config file to exist: %v", readErr)
	}
	cfg, parseErr := config.ParseConfig(data)
	if parseErr != nil {
		t.Fatalf("expected scaffold to parse: %v", parseErr)
	}
	if cfg.Model.Name != config.DefaultModel {
		t.Fatalf("expected default model, got %q", cfg.Model.Name)
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", configPath, "--yes"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", err.String())
	}
}

// TestInitCommandPrompts verifies the confirmation prompt accepts and declines.
func TestInitCommandPrompts(t *testing.T) {
	original := initInput
	t.Cleanup(func() { initInput = original })

	cases := []struct {
		name     string
		input    string
		wantCode int
		wantFile bool
	}{
		{name: "default yes", input: "\n", wantCode: ExitOK, wantFile: true},
		{name: "explicit no", input: "n\n", wantCode: ExitError, wantFile: false},
		{name: "retry then yes", input: "maybe\nyes\n", wantCode: ExitOK, wantFile: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")
			initInput = strings.NewReader(tc.input)
			var out, err bytes.Buffer
			code := Run([]string{"init", "--config", configPath}, &out, &err)
			if code != tc.wantCode {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tc.wantCode, code, err.String())
			}
			_, statErr := os.Stat(configPath)
			if tc.wantFile && statErr != nil {
				t.Fatalf("expected config file: %v", statErr)
			}
			if !tc.wantFile && statErr == nil {
				t.Fatalf("expected no config file")
			}
			if !strings.Contains(out.String(), "Write posturebench config to") {
				t.Fatalf("expected prompt, got %q", out.String())
			}
		})
	}
}
