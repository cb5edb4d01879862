package agent

import (
	"encoding/base64"
	"net/http"
)

// openRouterRequest is the JSON payload sent to OpenRouter.
type openRouterRequest struct {
	Model       string              `json:"model"`
	Stream      bool                `json:"stream"`
	Messages    []openRouterMessage `json:"messages"`
	Temperature *float64            `json:"temperature,omitempty"`
}

// openRouterMessage represents a single OpenRouter chat message.
type openRouterMessage struct {
	Role    string                  `json:"role"`
	Content []openRouterContentPart `json:"content"`
}

// openRouterContentPart is a text or image part of a message.
type openRouterContentPart struct {
	Type     string              `json:"type"`
	Text     string              `json:"text,omitempty"`
	ImageURL *openRouterImageURL `json:"image_url,omitempty"`
}

type openRouterImageURL struct {
	URL string `json:"url"`
}

// buildOpenRouterMessages converts messages into OpenRouter payloads,
// embedding images as data URLs after the text part.
func buildOpenRouterMessages(messages []Message) []openRouterMessage {
	converted := make([]openRouterMessage, 0, len(messages))
	for _, msg := range messages {
		parts := make([]openRouterContentPart, 0, len(msg.Images)+1)
		if msg.Content != "" {
			parts = append(parts, openRouterContentPart{Type: "text", Text: msg.Content})
		}
		for _, image := range msg.Images {
			parts = append(parts, openRouterContentPart{
				Type:     "image_url",
				ImageURL: &openRouterImageURL{URL: imageDataURL(image.Data)},
			})
		}
		converted = append(converted, openRouterMessage{Role: msg.Role, Content: parts})
	}
	return converted
}

func imageDataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
