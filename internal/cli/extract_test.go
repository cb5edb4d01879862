package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestExtractCommandFromFile verifies scores are read from a response file.
func TestExtractCommandFromFile(t *testing.T) {
	configPath := writeProject(t, testConfig)
	responsePath := filepath.Join(t.TempDir(), "response.txt")
	if err := os.WriteFile(responsePath, []byte("Spine Alignment: 42\nShoulder Position: 101\n"), 0o644); err != nil {
		t.Fatalf("write response: %v", err)
	}

	var out, errOut bytes.Buffer
	code := Run([]string{"extract", "--config", configPath, responsePath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	want := "shoulder: -\nspine: 42\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

// TestExtractCommandFromStdin verifies scores are read from stdin.
func TestExtractCommandFromStdin(t *testing.T) {
	configPath := writeProject(t, testConfig)
	original := extractInput
	t.Cleanup(func() { extractInput = original })
	extractInput = strings.NewReader("Shoulder Position: 88 Spine Alignment: 77")

	var out, errOut bytes.Buffer
	code := Run([]string{"extract", "--config", configPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	want := "shoulder: 88\nspine: 77\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

// TestExtractCommandMissingFile verifies an unreadable response file fails.
func TestExtractCommandMissingFile(t *testing.T) {
	configPath := writeProject(t, testConfig)
	var out, errOut bytes.Buffer
	code := Run([]string{"extract", "--config", configPath, filepath.Join(t.TempDir(), "none.txt")}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Failed to read response") {
		t.Fatalf("expected read failure, got %q", errOut.String())
	}
}
