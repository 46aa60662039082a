package handlers

import (
	"github.com/gin-gonic/gin"

	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/services"
	"mobilityplus-server/internal/utils"
)

// ChatHandler handles chat rooms and messages.
type ChatHandler struct {
	Chats services.ChatServiceContract
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chats services.ChatServiceContract) *ChatHandler {
	return &ChatHandler{Chats: chats}
}

// ListRooms returns the caller's rooms with per-room unread counts.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	rooms, err := h.Chats.ListRooms(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Chat rooms fetched successfully", rooms)
}

// ListMessages returns a room's history, oldest first. Participants only.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	messages, err := h.Chats.ListMessages(c.Request.Context(), c.Param("roomId"), userID)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage appends a message to a room the caller participates in.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	message, err := h.Chats.SendMessage(c.Request.Context(), c.Param("roomId"), userID, req.Text)
	if err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Created(c, "Message sent successfully", message)
}

// MarkRead zeroes the caller's unread counter for a room.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.Chats.MarkRead(c.Request.Context(), c.Param("roomId"), userID); err != nil {
		utils.ServiceError(c, err)
		return
	}

	utils.Success(c, "Chat marked as read", nil)
}
