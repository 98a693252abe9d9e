package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"sochi-schedule/models"
	"sochi-schedule/services"
)

// ChatHandler exposes the chat-bot conversation
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ChatWithBot processes chat-bot messages
func (h *ChatHandler) ChatWithBot(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Chat request - Session: %s, Message: %s", req.SessionID, req.Message)

	c.JSON(http.StatusOK, h.chat.ProcessMessage(c.Request.Context(), req.SessionID, req.Message))
}
