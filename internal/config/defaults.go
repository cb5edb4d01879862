package config

// Reference run settings used when no config file is present.
const (
	DefaultProvider = "ollama"
	DefaultModel    = "gemma3:27b-it-qat"
	DefaultRepeats  = 4

	DefaultRetryBaseMs = 500
	DefaultRetryMaxMs  = 10000
	DefaultRetryFactor = 2.0
)

// DefaultPrompt asks for exactly two labeled score lines and nothing else.
const DefaultPrompt = "You are a posture assessment system analyzing webcam images. Evaluate the following aspects of posture:\n\n" +
	"1. Shoulder Position (0-100): 0 means severely slouched shoulders, 100 means perfectly aligned shoulders.\n" +
	"2. Spine Alignment (0-100): 0 means severely hunched/curved spine, 100 means ideal vertical alignment.\n\n" +
	"Provide your assessment in this exact format only:\n" +
	"Shoulder Position: [score]\n" +
	"Spine Alignment: [score]\n\n" +
	"Do not include any other text, explanations, or commentary in your response."

// DefaultCategories lists the reference categories in report order.
func DefaultCategories() []string {
	return []string{"good", "bad"}
}

// DefaultMetrics lists the reference metrics in report order.
func DefaultMetrics() []MetricConfig {
	return []MetricConfig{
		{ID: "shoulder", Label: "Shoulder Position"},
		{ID: "spine", Label: "Spine Alignment"},
	}
}

// Default returns the reference configuration: two test images scored four times each.
func Default() Config {
	cfg := Config{
		Version: 1,
		Inputs: []InputConfig{
			{Path: "test_imgs/good.jpg"},
			{Path: "test_imgs/bad.jpg"},
		},
	}
	Normalize(&cfg)
	return cfg
}
