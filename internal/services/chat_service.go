package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/repositories"
)

// Compile-time check to ensure chatService implements the contract.
var _ ChatServiceContract = (*chatService)(nil)

type chatService struct {
	repos  repositories.Repositories
	events EventPublisher
}

// NewChatService creates the messaging service.
func NewChatService(repos repositories.Repositories, events EventPublisher) ChatServiceContract {
	return &chatService{repos: repos, events: events}
}

func (s *chatService) EnsureRoom(ctx context.Context, uidA, uidB string, names map[string]string) (*models.ChatRoom, error) {
	if uidA == "" || uidB == "" || uidA == uidB {
		return nil, fmt.Errorf("%w: a room needs two distinct participants", ErrValidation)
	}
	var room *models.ChatRoom
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		if err := ensureRoomInTx(ctx, tx, uidA, uidB, names); err != nil {
			return err
		}
		var err error
		room, err = tx.Chats().GetRoom(ctx, models.ChatRoomID(uidA, uidB))
		return err
	})
	if err != nil {
		return nil, translateRepoError(err, "chat room")
	}
	return room, nil
}

func (s *chatService) SendMessage(ctx context.Context, roomID, senderID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is empty", ErrValidation)
	}

	var (
		message   *models.ChatMessage
		recipient string
	)
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		room, err := tx.Chats().GetRoom(ctx, roomID)
		if err != nil {
			return translateRepoError(err, "chat room")
		}
		if !room.HasParticipant(senderID) {
			return fmt.Errorf("%w: sender is not a participant of this room", ErrForbidden)
		}
		recipient = room.OtherParticipant(senderID)

		message = &models.ChatMessage{
			RoomID:   roomID,
			SenderID: senderID,
			Text:     text,
		}
		if err := tx.Chats().CreateMessage(ctx, message); err != nil {
			return err
		}

		now := time.Now()
		room.LastMessage = text
		room.LastUpdatedAt = &now
		room.AddUnread(recipient, 1)
		return tx.Chats().UpdateRoom(ctx, room)
	})
	if err != nil {
		return nil, translateRepoError(err, "chat room")
	}

	if s.events != nil {
		s.events.Publish(recipient, realtime.Event{
			Type:    realtime.EventChatMessage,
			Payload: message,
			At:      time.Now(),
		})
	}
	return message, nil
}

func (s *chatService) MarkRead(ctx context.Context, roomID, userID string) error {
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		room, err := tx.Chats().GetRoom(ctx, roomID)
		if err != nil {
			return translateRepoError(err, "chat room")
		}
		if !room.HasParticipant(userID) {
			return fmt.Errorf("%w: not a participant of this room", ErrForbidden)
		}
		room.ResetUnread(userID)
		return tx.Chats().UpdateRoom(ctx, room)
	})
	if err != nil {
		return translateRepoError(err, "chat room")
	}
	return nil
}

func (s *chatService) ListRooms(ctx context.Context, userID string) ([]ChatRoomView, error) {
	rooms, err := s.repos.Chats().ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]ChatRoomView, len(rooms))
	for i, room := range rooms {
		other := room.OtherParticipant(userID)
		views[i] = ChatRoomView{
			Room:      room,
			OtherID:   other,
			OtherName: room.NameFor(other),
			Unread:    room.UnreadFor(userID),
		}
	}
	return views, nil
}

func (s *chatService) ListMessages(ctx context.Context, roomID, userID string) ([]models.ChatMessage, error) {
	room, err := s.repos.Chats().GetRoom(ctx, roomID)
	if err != nil {
		return nil, translateRepoError(err, "chat room")
	}
	if !room.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: not a participant of this room", ErrForbidden)
	}
	return s.repos.Chats().ListMessages(ctx, roomID)
}
