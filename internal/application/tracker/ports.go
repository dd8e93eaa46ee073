package tracker

import "context"

// Directory resolves a participant ID to a human-readable display name via
// the chat platform. Implementations may be slow (network round-trip); the
// engine only calls them outside the store lock.
type Directory interface {
	DisplayName(ctx context.Context, chatID int64, userID string) (string, error)
}

// Notifier delivers a text message to a chat. Used for the periodic progress
// broadcasts and for channel announcements triggered by commands.
type Notifier interface {
	Broadcast(ctx context.Context, chatID int64, text string) error
}
