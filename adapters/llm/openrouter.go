// Package llm adapts an OpenAI-compatible completion endpoint behind the
// CompletionStreamer port.
package llm

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// Fixed completion parameters forwarded with every conversation.
const (
	temperature = 0.7
	maxTokens   = 1000
)

// Client streams completions from an OpenAI-compatible provider such as
// OpenRouter.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a streaming completion client against the given base URL.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

var _ ports.CompletionStreamer = (*Client)(nil)

// Stream forwards the conversation with streaming enabled and delivers
// output deltas through onDelta as they arrive. Nothing is buffered.
func (c *Client) Stream(ctx context.Context, messages []core.ChatMessage, onDelta func(delta string) error) error {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      true,
	}
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return upstreamError(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return upstreamError(err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := onDelta(delta); err != nil {
				return err
			}
		}
	}
}

// upstreamError preserves the provider's status code and error body so the
// relay can propagate them verbatim.
func upstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &core.UpstreamError{
			Op:     "chat completion",
			Status: apiErr.HTTPStatusCode,
			Body:   apiErr.Message,
			Err:    err,
		}
	}
	return &core.UpstreamError{Op: "chat completion", Err: err}
}
