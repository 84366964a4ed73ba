package api

import (
	"net/http" // HTTP status codes

	"chat_storage/internal/events"     // Event publisher
	"chat_storage/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin" // Gin web framework
)

// NewRouter wires the storage endpoints onto a gin engine
func NewRouter(store Store, pub *events.Publisher, jwtSecret string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	storage := r.Group("/storage")
	storage.POST("/create_user", RegisterHandler(store, pub))
	storage.POST("/login", LoginHandler(store, jwtSecret))
	storage.POST("/add_chat", AddChatHandler(store, pub))
	storage.GET("/get_chats/:user_id", GetChatsHandler(store))

	return r, nil
}
