package db

import (
	"context" // Request-scoped context
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"chat_storage/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// CreateUser inserts a new user row
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	user := domain.User{Username: username, PasswordHash: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: create user: %w", ErrStorage, err)
	}
	return &user, nil
}

// FindUserByUsername looks a user up by its unique username
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %w", ErrStorage, err)
	}
	return &user, nil
}

// CreateChat inserts a chat owned by userID; an unknown owner fails on the foreign key
func (s *Store) CreateChat(ctx context.Context, userID uint, prompt, answer string) (*domain.Chat, error) {
	chat := domain.Chat{UserID: userID, Prompt: prompt, Answer: answer}
	if err := s.db.WithContext(ctx).Create(&chat).Error; err != nil {
		return nil, fmt.Errorf("%w: create chat: %w", ErrStorage, err)
	}
	return &chat, nil
}

// ListChatsByUser returns the user's chats oldest first.
// An unknown user yields an empty slice, not an error.
func (s *Store) ListChatsByUser(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats := []domain.Chat{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("%w: list chats: %w", ErrStorage, err)
	}
	return chats, nil
}

// DeleteUser removes a user; the database cascades the delete to their chats
func (s *Store) DeleteUser(ctx context.Context, userID uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, userID)
	if res.Error != nil {
		return fmt.Errorf("%w: delete user: %w", ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
