package entity

import (
	"sort"
	"time"
)

// conversationSeparator joins the two participant IDs of a conversation.
const conversationSeparator = "_"

// Message is a single chat message between two users.
type Message struct {
	ID         string     `json:"id"`
	ChatID     string     `json:"chat_id"`
	Text       string     `json:"text"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	SenderName string     `json:"sender_name"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// ConversationID derives the identifier shared by both participants of a
// conversation. The result does not depend on argument order. It reports
// false when either participant is empty.
func ConversationID(a, b string) (string, bool) {
	if a == "" || b == "" {
		return "", false
	}

	ids := []string{a, b}
	sort.Strings(ids)

	return ids[0] + conversationSeparator + ids[1], true
}
