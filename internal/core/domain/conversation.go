package domain

import "time"

// Conversation is a message thread between a client and a developer about a
// project. At most one conversation may exist per (project, pair).
type Conversation struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ClientID    string    `json:"client_id"`
	DeveloperID string    `json:"developer_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastMessage time.Time `json:"last_message_at"`
}

// Participant reports whether userID is a member of the conversation.
func (c *Conversation) Participant(userID string) bool {
	return c.ClientID == userID || c.DeveloperID == userID
}

// Message is a single message within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}
