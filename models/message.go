package models

// Chat roles used in the extractor history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// InboundMessage is the contract received from the messaging transport.
type InboundMessage struct {
	From     string `json:"from"`
	Body     string `json:"body"`
	IsGroup  bool   `json:"isGroup"`
	IsStatus bool   `json:"isStatus"`
	IsSelf   bool   `json:"isSelf"`
}

// ChatMessage is one role-tagged turn of a conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
