package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// openRouterStreamChunk is a partial SSE payload.
type openRouterStreamChunk struct {
	Model   string                   `json:"model"`
	Choices []openRouterStreamChoice `json:"choices"`
	Error   *openRouterStreamError   `json:"error"`
}

// openRouterStreamChoice contains a delta event from OpenRouter.
type openRouterStreamChoice struct {
	Delta        openRouterStreamDelta `json:"delta"`
	FinishReason string                `json:"finish_reason"`
}

// openRouterStreamDelta contains incremental content.
type openRouterStreamDelta struct {
	Content string `json:"content"`
}

// openRouterStreamError is sent mid-stream when the upstream model fails.
type openRouterStreamError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// parseOpenRouterStream reads SSE output and returns the concatenated content and model id.
func parseOpenRouterStream(reader io.Reader) (string, string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var content strings.Builder
	model := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}
		var chunk openRouterStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", "", fmt.Errorf("parse stream chunk: %w", err)
		}
		if chunk.Error != nil {
			code := chunk.Error.Code
			if code == 0 {
				code = 502
			}
			return "", "", &StatusError{Provider: ProviderOpenRouter, StatusCode: code, Message: chunk.Error.Message}
		}
		if chunk.Model != "" {
			model = chunk.Model
		}
		for _, choice := range chunk.Choices {
			content.WriteString(choice.Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	return content.String(), model, nil
}
