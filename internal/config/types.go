package config

// Config is the parsed .posturebench/config.yml document.
type Config struct {
	Version               int            `yaml:"version"`
	Model                 ModelConfig    `yaml:"model"`
	Repeats               int            `yaml:"repeats"`
	Prompt                string         `yaml:"prompt"`
	Categories            []string       `yaml:"categories"`
	DefaultCategory       string         `yaml:"default_category"`
	Metrics               []MetricConfig `yaml:"metrics"`
	Inputs                []InputConfig  `yaml:"inputs"`
	Retry                 RetryConfig    `yaml:"retry"`
	RequestTimeoutSeconds int            `yaml:"request_timeout_seconds"`
}

// ModelConfig selects the text-generation backend and model.
type ModelConfig struct {
	Provider    string   `yaml:"provider"`
	Name        string   `yaml:"name"`
	BaseURL     string   `yaml:"base_url"`
	Temperature *float64 `yaml:"temperature"`
}

// MetricConfig names a scored dimension and the response label that precedes it.
type MetricConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// InputConfig is a single image to score. An empty category is inferred from the path.
type InputConfig struct {
	Path     string `yaml:"path"`
	Category string `yaml:"category"`
}

// RetryConfig bounds retries of transient service failures.
type RetryConfig struct {
	MaxAttempts int     `yaml:"max_attempts"`
	BaseMs      int     `yaml:"base_ms"`
	MaxMs       int     `yaml:"max_ms"`
	Factor      float64 `yaml:"factor"`
	JitterMs    int     `yaml:"jitter_ms"`
}
