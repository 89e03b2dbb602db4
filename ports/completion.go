package ports

import (
	"context"

	"github.com/uaplabs/minidapps/core"
)

// CompletionStreamer forwards a conversation to the upstream completion API
// and delivers output tokens incrementally through onDelta as they arrive.
type CompletionStreamer interface {
	Stream(ctx context.Context, messages []core.ChatMessage, onDelta func(delta string) error) error
}
