package models

// ChatRequest represents an incoming chat-bot message
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse represents the bot's reply
type ChatResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Command string      `json:"command,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
