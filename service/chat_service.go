package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// ChatService validates an inbound conversation and relays it to the
// upstream completion API, streaming output back incrementally.
type ChatService struct {
	completer ports.CompletionStreamer
}

// NewChatService creates a new chat relay service.
func NewChatService(completer ports.CompletionStreamer) *ChatService {
	return &ChatService{completer: completer}
}

// Relay validates and sanitizes the messages, then forwards them upstream.
// Output deltas are delivered through onDelta as they are produced; nothing
// is buffered.
func (s *ChatService) Relay(ctx context.Context, messages []core.ChatMessage, onDelta func(delta string) error) error {
	sanitized, err := sanitizeMessages(messages)
	if err != nil {
		return err
	}
	return s.completer.Stream(ctx, sanitized, onDelta)
}

// sanitizeMessages enforces the 1-50 message window, role whitelist and the
// 4000 character content cap, then trims and re-truncates every message as
// defense in depth.
func sanitizeMessages(messages []core.ChatMessage) ([]core.ChatMessage, error) {
	if len(messages) == 0 {
		return nil, core.NewValidationError("messages", "at least one message is required")
	}
	if len(messages) > core.MaxChatMessages {
		return nil, core.NewValidationError("messages", fmt.Sprintf("at most %d messages are allowed", core.MaxChatMessages))
	}

	sanitized := make([]core.ChatMessage, len(messages))
	for i, msg := range messages {
		field := fmt.Sprintf("messages[%d]", i)

		switch msg.Role {
		case core.RoleUser, core.RoleAssistant, core.RoleSystem:
		default:
			return nil, core.NewValidationError(field+".role", "must be one of user, assistant, system")
		}

		content := msg.Content
		if content == "" {
			return nil, core.NewValidationError(field+".content", "must not be empty")
		}
		if len([]rune(content)) > core.MaxMessageContent {
			return nil, core.NewValidationError(field+".content", fmt.Sprintf("must be at most %d characters", core.MaxMessageContent))
		}

		content = strings.TrimSpace(content)
		if runes := []rune(content); len(runes) > core.MaxMessageContent {
			content = string(runes[:core.MaxMessageContent])
		}

		sanitized[i] = core.ChatMessage{Role: msg.Role, Content: content}
	}
	return sanitized, nil
}
