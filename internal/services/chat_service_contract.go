package services

import (
	"context"

	"mobilityplus-server/internal/models"
)

// ChatRoomView is a room shaped for one participant: the counterpart's name
// and the caller's own unread counter.
type ChatRoomView struct {
	Room      models.ChatRoom `json:"room"`
	OtherID   string          `json:"otherId"`
	OtherName string          `json:"otherName"`
	Unread    int             `json:"unread"`
}

// ChatServiceContract owns room identity, message delivery and unread
// bookkeeping.
type ChatServiceContract interface {
	// EnsureRoom idempotently creates the room for a participant pair. It
	// never truncates message history; display names merge in if missing.
	EnsureRoom(ctx context.Context, uidA, uidB string, names map[string]string) (*models.ChatRoom, error)
	// SendMessage appends a message and, in the same transaction, updates the
	// room's last-message fields and bumps the recipient's unread counter.
	SendMessage(ctx context.Context, roomID, senderID, text string) (*models.ChatMessage, error)
	// MarkRead zeroes the caller's unread counter.
	MarkRead(ctx context.Context, roomID, userID string) error
	ListRooms(ctx context.Context, userID string) ([]ChatRoomView, error)
	ListMessages(ctx context.Context, roomID, userID string) ([]models.ChatMessage, error)
}
