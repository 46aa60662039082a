package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/utils"
)

// EventsHandler streams realtime change notifications to the caller over
// server-sent events. Each authenticated user sees only events addressed to
// them: appointment status changes and incoming chat messages.
type EventsHandler struct {
	Hub *realtime.Hub
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{Hub: hub}
}

// Stream subscribes the caller and relays events until the client disconnects.
// The subscription is released on disconnect, so listeners never leak.
func (h *EventsHandler) Stream(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	events, cancel := h.Hub.Subscribe(userID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
