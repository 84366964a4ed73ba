package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"chat_storage/internal/db"         // Persistence gateway errors
	"chat_storage/internal/events"     // Event publisher
	"chat_storage/internal/middleware" // Request-scoped logging
	"chat_storage/internal/utils"      // Password and token helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Request struct for registration.
// Pointer fields let "required" reject a missing key while still accepting "".
type RegisterRequest struct {
	Username *string `json:"username" binding:"required"` // Username must be present
	Password *string `json:"password" binding:"required"` // Password must be present
}

// Request struct for login
type LoginRequest struct {
	Username *string `json:"username" binding:"required"` // Username must be present
	Password *string `json:"password" binding:"required"` // Password must be present
}

// dummyDigest is compared against when the username is unknown, so both failure paths cost one bcrypt check
var dummyDigest, _ = utils.HashPassword("unknown-user-placeholder")

// RegisterHandler creates a user and announces it on user_events
func RegisterHandler(users UserStore, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username, password := *req.Username, *req.Password
		hash, err := utils.HashPassword(password)
		if err != nil {
			middleware.LogEntry(c).WithField("error", err.Error()).Error("Password hashing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}
		user, err := users.CreateUser(c.Request.Context(), username, hash)
		if err != nil {
			// Duplicate usernames and storage failures look the same to the client
			middleware.LogEntry(c).WithFields(logrus.Fields{
				"username":  username,
				"duplicate": errors.Is(err, db.ErrDuplicateUsername),
				"error":     err.Error(),
			}).Error("Create user failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
		pub.Publish(events.TopicUserEvents, user.Username, events.UserCreated(user.Username))
	}
}

// LoginHandler verifies credentials; a token is included when jwtSecret is set
func LoginHandler(users UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username, password := *req.Username, *req.Password
		user, err := users.FindUserByUsername(c.Request.Context(), username)
		switch {
		case errors.Is(err, db.ErrNotFound):
			utils.CheckPassword(password, dummyDigest)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		case err != nil:
			middleware.LogEntry(c).WithFields(logrus.Fields{
				"username": username,
				"error":    err.Error(),
			}).Error("Login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
			return
		}
		if !utils.CheckPassword(password, user.PasswordHash) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		resp := gin.H{"message": "Login successful"}
		if jwtSecret != "" {
			token, err := utils.GenerateJWT(user.ID, user.Username, jwtSecret)
			if err != nil {
				middleware.LogEntry(c).WithField("error", err.Error()).Error("Token generation failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
				return
			}
			resp["token"] = token
		}
		c.JSON(http.StatusOK, resp)
	}
}
