package agent

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Image is an image payload attached to a message. Data holds the raw file bytes.
type Image struct {
	Path string
	Data []byte
}

// Message is a single chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
	Images  []Image
}

// Request describes one text-generation call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature *float64
}

// Response is the generated text of a completed call.
type Response struct {
	Text  string
	Model string
}

// Provider generates text for a request. Implementations are synchronous.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// UserMessage builds a user turn carrying an instruction and images.
func UserMessage(text string, images ...Image) Message {
	return Message{Role: "user", Content: text, Images: images}
}

// Provider names accepted by ProviderFromConfig.
const (
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"
)

// ProviderFromConfig builds the named provider. An empty baseURL selects the
// provider's environment or built-in default.
func ProviderFromConfig(provider, baseURL string, client *http.Client) (Provider, error) {
	switch strings.TrimSpace(provider) {
	case ProviderOllama:
		return NewOllamaProvider(baseURL, client)
	case ProviderOpenRouter:
		apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required")
		}
		var doer HTTPDoer
		if client != nil {
			doer = client
		}
		return NewOpenRouterProvider(apiKey, baseURL, doer)
	case "":
		return nil, fmt.Errorf("provider is required")
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
