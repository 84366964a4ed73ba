package db

import (
	"context" // Context for cancellation
	"fmt"     // Error wrapping

	"chat_storage/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
)

// EnsureSchema creates the users and chats tables if they are missing.
// AutoMigrate is idempotent and also creates the cascading foreign key from chats to users.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&domain.User{}, &domain.Chat{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logrus.Info("Tables created or already exist.")
	return nil
}
