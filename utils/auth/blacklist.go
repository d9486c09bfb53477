package auth

import (
	"context"
	"time"

	"github.com/nmdong/VietThanhProductions/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Denylist persists revoked token identifiers
type Denylist interface {
	// Add records a revocation. Adding an identifier that is already present is a no-op.
	Add(ctx context.Context, jti string, tokenType model.TokenType, userID *uint, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Prune removes entries for tokens that expired before the given time.
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// BlacklistService handles JWT token revocation
type BlacklistService struct {
	db *gorm.DB
}

var _ Denylist = (*BlacklistService)(nil)

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db}
}

// Add adds a token to the blacklist
func (s *BlacklistService) Add(ctx context.Context, jti string, tokenType model.TokenType, userID *uint, expiresAt time.Time) error {
	entry := model.RevokedToken{
		JTI:       jti,
		TokenType: tokenType,
		UserID:    userID,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: expiresAt.UTC(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&entry).
		Error
}

// IsRevoked checks if a token is in the blacklist
func (s *BlacklistService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).
		Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Prune removes blacklist entries whose tokens could no longer be accepted anyway
func (s *BlacklistService) Prune(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", before.UTC()).
		Delete(&model.RevokedToken{})
	return result.RowsAffected, result.Error
}
