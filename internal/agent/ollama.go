package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements Provider against an Ollama server's /api/chat endpoint.
type OllamaProvider struct {
	client *api.Client
}

// NewOllamaProvider connects to baseURL, or to OLLAMA_HOST when baseURL is empty.
func NewOllamaProvider(baseURL string, client *http.Client) (*OllamaProvider, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if strings.TrimSpace(baseURL) == "" {
		apiClient, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client from environment: %w", err)
		}
		return &OllamaProvider{client: apiClient}, nil
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("ollama base url %q must include scheme and host", baseURL)
	}
	return &OllamaProvider{client: api.NewClient(base, client)}, nil
}

// Generate sends one non-streaming chat request.
func (p *OllamaProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Model) == "" {
		return Response{}, fmt.Errorf("model is required")
	}
	stream := false
	chatReq := &api.ChatRequest{
		Model:    req.Model,
		Messages: toOllamaMessages(req.Messages),
		Stream:   &stream,
	}
	if req.Temperature != nil {
		chatReq.Options = map[string]any{"temperature": *req.Temperature}
	}

	var content strings.Builder
	model := req.Model
	received := false
	err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		received = true
		content.WriteString(resp.Message.Content)
		if resp.Model != "" {
			model = resp.Model
		}
		return nil
	})
	if err != nil {
		return Response{}, wrapOllamaError(err)
	}
	if !received {
		return Response{}, &StatusError{Provider: ProviderOllama, StatusCode: http.StatusBadGateway, Message: "empty response"}
	}
	return Response{Text: content.String(), Model: model}, nil
}

func toOllamaMessages(messages []Message) []api.Message {
	converted := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		out := api.Message{Role: msg.Role, Content: msg.Content}
		for _, image := range msg.Images {
			out.Images = append(out.Images, api.ImageData(image.Data))
		}
		converted = append(converted, out)
	}
	return converted
}

// wrapOllamaError maps the client's status errors onto StatusError.
func wrapOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		message := statusErr.ErrorMessage
		if message == "" {
			message = statusErr.Status
		}
		return &StatusError{Provider: ProviderOllama, StatusCode: statusErr.StatusCode, Message: message}
	}
	return fmt.Errorf("ollama chat: %w", err)
}
