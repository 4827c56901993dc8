package domain

import "time"

// ChannelWhatsApp is the only channel dispatched by this service.
const ChannelWhatsApp = "whatsapp"

// Delivery status of one send attempt.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Per-user WhatsApp budget: at most RateLimitMax sends in RateLimitWindow.
const (
	RateLimitMax    = 10
	RateLimitWindow = 60 * time.Second
)

// Notification is one audit record. Records are append-only: one per send
// attempt, whatever the outcome.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	To          string    `json:"to"`
	Template    string    `json:"template"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	ProviderRef *string   `json:"provider_ref,omitempty"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
