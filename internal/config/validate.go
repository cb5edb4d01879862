package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config and the input files it references.
func Validate(cfg *Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	switch strings.TrimSpace(cfg.Model.Provider) {
	case "ollama", "openrouter":
	case "":
		add("model.provider", "is required")
	default:
		add("model.provider", fmt.Sprintf("unsupported provider %q", cfg.Model.Provider))
	}
	if strings.TrimSpace(cfg.Model.Name) == "" {
		add("model.name", "is required")
	}
	if cfg.Model.Temperature != nil && (*cfg.Model.Temperature < 0 || *cfg.Model.Temperature > 2) {
		add("model.temperature", "must be between 0 and 2")
	}

	if cfg.Repeats < 1 {
		add("repeats", "must be >= 1")
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		add("prompt", "is required")
	}

	categories := map[string]struct{}{}
	if len(cfg.Categories) == 0 {
		add("categories", "at least one category is required")
	}
	for i, category := range cfg.Categories {
		field := fmt.Sprintf("categories[%d]", i)
		if strings.TrimSpace(category) == "" {
			add(field, "is required")
			continue
		}
		if _, exists := categories[category]; exists {
			add("categories", fmt.Sprintf("duplicate category %q", category))
			continue
		}
		categories[category] = struct{}{}
	}
	if _, ok := categories[cfg.DefaultCategory]; !ok && cfg.DefaultCategory != "" {
		add("default_category", fmt.Sprintf("unknown category %q", cfg.DefaultCategory))
	}

	metricIDs := map[string]struct{}{}
	labels := map[string]struct{}{}
	if len(cfg.Metrics) == 0 {
		add("metrics", "at least one metric is required")
	}
	for i, metric := range cfg.Metrics {
		fieldPrefix := fmt.Sprintf("metrics[%d]", i)
		id := strings.TrimSpace(metric.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := metricIDs[id]; exists {
			add("metrics.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			metricIDs[id] = struct{}{}
		}
		if strings.TrimSpace(metric.Label) == "" {
			add(fieldPrefix+".label", "is required")
		} else if _, exists := labels[metric.Label]; exists {
			add("metrics.label", fmt.Sprintf("duplicate label %q", metric.Label))
		} else {
			labels[metric.Label] = struct{}{}
		}
	}

	if baseDir == "" {
		baseDir = "."
	}
	if len(cfg.Inputs) == 0 {
		add("inputs", "at least one input is required")
	}
	for i, input := range cfg.Inputs {
		fieldPrefix := fmt.Sprintf("inputs[%d]", i)
		path := strings.TrimSpace(input.Path)
		if path == "" {
			add(fieldPrefix+".path", "is required")
		} else {
			resolved := ResolveInputPath(baseDir, path)
			info, err := os.Stat(resolved)
			if err != nil {
				add(fieldPrefix+".path", fmt.Sprintf("image not found at %q", input.Path))
			} else if info.IsDir() {
				add(fieldPrefix+".path", fmt.Sprintf("path %q is a directory", input.Path))
			}
		}
		if _, ok := categories[input.Category]; !ok {
			add(fieldPrefix+".category", fmt.Sprintf("unknown category %q", input.Category))
		}
	}

	if cfg.Retry.MaxAttempts < 1 {
		add("retry.max_attempts", "must be >= 1")
	}
	if cfg.Retry.BaseMs < 0 {
		add("retry.base_ms", "must be >= 0")
	}
	if cfg.Retry.MaxMs < cfg.Retry.BaseMs {
		add("retry.max_ms", "must be >= retry.base_ms")
	}
	if cfg.Retry.Factor < 1 {
		add("retry.factor", "must be >= 1")
	}
	if cfg.Retry.JitterMs < 0 {
		add("retry.jitter_ms", "must be >= 0")
	}
	if cfg.RequestTimeoutSeconds < 0 {
		add("request_timeout_seconds", "must be >= 0")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ResolveInputPath joins a relative input path onto baseDir.
func ResolveInputPath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
