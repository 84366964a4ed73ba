package api

import (
	"context" // Request-scoped context

	"chat_storage/internal/domain" // Importing domain models
)

// UserStore is the user half of the persistence gateway
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ChatStore is the chat half of the persistence gateway
type ChatStore interface {
	CreateChat(ctx context.Context, userID uint, prompt, answer string) (*domain.Chat, error)
	ListChatsByUser(ctx context.Context, userID uint) ([]domain.Chat, error)
}

// Store is everything the handlers need from the database
type Store interface {
	UserStore
	ChatStore
}
