package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"chat_storage/internal/events"     // Event publisher
	"chat_storage/internal/middleware" // Request-scoped logging

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// AddChatRequest represents a chat to store; keys must be present, empty values are stored as given
type AddChatRequest struct {
	UserID *uint   `json:"user_id" binding:"required"` // Owning user
	Prompt *string `json:"prompt" binding:"required"`  // User prompt
	Answer *string `json:"answer" binding:"required"`  // Model answer
}

// ChatResponse is one entry of the chat history
type ChatResponse struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// AddChatHandler stores a chat and announces it on chat_events
func AddChatHandler(chats ChatStore, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddChatRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		userID, prompt, answer := *req.UserID, *req.Prompt, *req.Answer
		if _, err := chats.CreateChat(c.Request.Context(), userID, prompt, answer); err != nil {
			middleware.LogEntry(c).WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Add chat failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding chat"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Chat added successfully"})
		pub.Publish(events.TopicChatEvents, events.ChatKey(userID), events.ChatAdded(userID, prompt))
	}
}

// GetChatsHandler returns a user's chat history; unknown users get an empty list
func GetChatsHandler(chats ChatStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		history, err := chats.ListChatsByUser(c.Request.Context(), uint(userID))
		if err != nil {
			middleware.LogEntry(c).WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("List chats failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving chats"})
			return
		}
		resp := make([]ChatResponse, len(history))
		for i, chat := range history {
			resp[i] = ChatResponse{Prompt: chat.Prompt, Answer: chat.Answer}
		}
		c.JSON(http.StatusOK, gin.H{"chats": resp})
	}
}
