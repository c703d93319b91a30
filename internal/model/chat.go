package model

// ChatRole is the speaker of a chat turn
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is one message in an assistant conversation. Turns are never mutated.
type ChatTurn struct {
	Role                ChatRole   `json:"role"`
	Content             string     `json:"content"`
	SuggestedProperties []Property `json:"suggested_properties,omitempty"` // assistant turns only, at most 3
}

// CreateSessionRequest opens a chat over the listings selected by the given filters
type CreateSessionRequest struct {
	Term     string  `json:"q"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
	Page     int     `json:"page"`
}

// SubmitMessageRequest carries the user's free-text query
type SubmitMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SessionResponse is the rendered state of a chat session
type SessionResponse struct {
	ID       string     `json:"id"`
	State    string     `json:"state"`
	Turns    []ChatTurn `json:"turns"`
	Listings int        `json:"listings"`
}
