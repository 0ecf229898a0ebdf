package models

import "time"

// Notification is a durable, backend-owned notification. Identity is ID.
// The only client-side mutation is the one-way unread → read transition;
// the list itself is replaced wholesale on every fetch.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
