package telegram

import (
	"context"
	"fmt"
	"strconv"
)

// Gateway adapts the Telegram client to the application-layer ports: name
// lookups via getChatMember and announcements via sendMessage.
type Gateway struct {
	client *Client
}

// NewGateway creates a gateway over the given client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// DisplayName resolves a participant's current full name through the chat
// membership of the goal's chat.
func (g *Gateway) DisplayName(ctx context.Context, chatID int64, userID string) (string, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("telegram: invalid user id %q: %w", userID, err)
	}

	member, err := g.client.GetChatMember(ctx, chatID, id)
	if err != nil {
		return "", err
	}
	if member.User == nil {
		return "", fmt.Errorf("telegram: chat member %s has no user", userID)
	}
	return member.User.FullName(), nil
}

// Broadcast sends a text message to the chat.
func (g *Gateway) Broadcast(ctx context.Context, chatID int64, text string) error {
	_, err := g.client.SendText(ctx, chatID, text)
	return err
}
