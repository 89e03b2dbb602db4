package core

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is one entry of the conversation forwarded to the completion API.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Limits enforced on inbound conversations before anything is forwarded.
const (
	MaxChatMessages   = 50
	MaxMessageContent = 4000
)
