package domain

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`                                     // Primary key
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null"`         // Unique username
	PasswordHash string `gorm:"type:varchar(255);not null"`                     // Bcrypt digest, never the raw password
	Chats        []Chat `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"` // Chats are removed with their owner
}
