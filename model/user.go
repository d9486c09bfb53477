package model

import "time"

// User represents a registered account that can authenticate against the API
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password in JSON
	Email        *string   `gorm:"type:varchar(100)" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "auth_users"
}
