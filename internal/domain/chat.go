package domain

// Chat Model
type Chat struct {
	ID     uint   `gorm:"primaryKey"`         // Primary key
	UserID uint   `gorm:"not null;index"`     // Foreign key to User
	Prompt string `gorm:"type:text;not null"` // User prompt
	Answer string `gorm:"type:text;not null"` // Model answer
}
