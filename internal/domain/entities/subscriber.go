package entities

import "time"

// Subscriber is a newsletter subscription keyed by lowercased email.
type Subscriber struct {
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
