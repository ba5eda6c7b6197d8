package handlers

import (
	"net/http"
	"time"

	"zapagenda/models"
	"zapagenda/services/booking"
	"zapagenda/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler is the transport adapter: the messaging gateway posts
// every received chat message here and sends back whatever reply the
// engine produced.
type MessageHandler struct {
	Engine booking.BookingEngine
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(engine booking.BookingEngine) *MessageHandler {
	return &MessageHandler{Engine: engine}
}

// InboundMessageHandler handles POST /api/messages/inbound.
func (h *MessageHandler) InboundMessageHandler(c *gin.Context) {
	var msg models.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid message payload", err.Error())
		return
	}

	reply, err := h.Engine.HandleInboundMessage(c.Request.Context(), msg, time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to handle message", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
