package model

import "time"

// TokenType distinguishes short-lived access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Valid reports whether t is one of the known token types
func (t TokenType) Valid() bool {
	return t == TokenTypeAccess || t == TokenTypeRefresh
}

// RevokedToken is the denylist entry written when a token is logged out.
// Rows are append-only; ExpiresAt is the natural expiry of the revoked token
// and is only used to prune rows that can no longer matter.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;type:varchar(255)" json:"jti"`
	TokenType TokenType `gorm:"type:varchar(20);not null" json:"token_type"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	RevokedAt time.Time `gorm:"not null" json:"revoked_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

// TableName specifies the table name for RevokedToken
func (RevokedToken) TableName() string {
	return "token_blocklist"
}
