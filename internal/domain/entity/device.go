package entity

import (
	"time"
)

// UserProfile holds the per-user settings stored in the users collection.
type UserProfile struct {
	UserID    string    `json:"user_id"`   // Firebase Auth UID, also the document ID.
	FCMToken  string    `json:"fcm_token"` // Firebase Cloud Messaging token for push notifications.
	Platform  string    `json:"platform"`  // Device platform (ios, android).
	UpdatedAt time.Time `json:"updated_at"`
}
