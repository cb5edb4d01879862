package config

import (
	"path/filepath"
	"strings"
)

// Normalize fills unset fields with reference defaults and infers input categories.
func Normalize(cfg *Config) {
	if strings.TrimSpace(cfg.Model.Provider) == "" {
		cfg.Model.Provider = DefaultProvider
	}
	if strings.TrimSpace(cfg.Model.Name) == "" {
		cfg.Model.Name = DefaultModel
	}
	if cfg.Repeats == 0 {
		cfg.Repeats = DefaultRepeats
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		cfg.Prompt = DefaultPrompt
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = cfg.Categories[len(cfg.Categories)-1]
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = DefaultMetrics()
	}
	for i := range cfg.Inputs {
		if strings.TrimSpace(cfg.Inputs[i].Category) == "" {
			cfg.Inputs[i].Category = InferCategory(cfg.Inputs[i].Path, cfg.Categories, cfg.DefaultCategory)
		}
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 1
	}
	if cfg.Retry.BaseMs == 0 {
		cfg.Retry.BaseMs = DefaultRetryBaseMs
	}
	if cfg.Retry.MaxMs == 0 {
		cfg.Retry.MaxMs = DefaultRetryMaxMs
	}
	if cfg.Retry.Factor == 0 {
		cfg.Retry.Factor = DefaultRetryFactor
	}
}

// InferCategory returns the first category named in the file name of path,
// or fallback when none is.
func InferCategory(path string, categories []string, fallback string) string {
	name := strings.ToLower(filepath.Base(path))
	for _, category := range categories {
		if category == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(category)) {
			return category
		}
	}
	return fallback
}
