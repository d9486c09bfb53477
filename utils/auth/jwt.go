package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nmdong/VietThanhProductions/model"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrInvalidClaims  = errors.New("invalid token claims")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

const (
	DefaultAccessExpiry  = 15 * time.Minute
	DefaultRefreshExpiry = 7 * 24 * time.Hour
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	Expiry        time.Duration
	RefreshExpiry time.Duration
	Issuer        string
	// Clock overrides time.Now, used by tests to mint already expired tokens
	Clock func() time.Time
}

// Claims represents JWT claims. Subject carries the user id in decimal form.
type Claims struct {
	TokenType model.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user id
func (c *Claims) UserID() (uint, error) {
	if c.Subject == "" {
		return 0, ErrInvalidClaims
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidClaims
	}
	return uint(id), nil
}

// JWTManager mints and verifies signed tokens. The only state it consults is
// the denylist; tokens themselves are never stored.
type JWTManager struct {
	config   JWTConfig
	denylist Denylist
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(config JWTConfig, denylist Denylist) *JWTManager {
	if config.Expiry <= 0 {
		config.Expiry = DefaultAccessExpiry
	}
	if config.RefreshExpiry <= 0 {
		config.RefreshExpiry = DefaultRefreshExpiry
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &JWTManager{
		config:   config,
		denylist: denylist,
	}
}

// GenerateAccessToken generates a new access token with JTI
func (j *JWTManager) GenerateAccessToken(userID uint) (string, string, error) {
	return j.generate(userID, model.TokenTypeAccess, j.config.Expiry)
}

// GenerateRefreshToken generates a new refresh token with JTI
func (j *JWTManager) GenerateRefreshToken(userID uint) (string, string, error) {
	return j.generate(userID, model.TokenTypeRefresh, j.config.RefreshExpiry)
}

func (j *JWTManager) generate(userID uint, tokenType model.TokenType, ttl time.Duration) (string, string, error) {
	now := j.config.Clock()
	jti := uuid.New().String()

	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    j.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signedToken, jti, nil
}

// ValidateToken checks signature and expiry only. Use Verify for anything
// that authorizes a request.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.config.Clock),
	}
	if j.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.config.Secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" || !claims.TokenType.Valid() {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// Verify runs every check a protected operation needs: signature, expiry,
// token type and absence from the denylist.
func (j *JWTManager) Verify(ctx context.Context, tokenString string, requiredType model.TokenType) (*Claims, error) {
	claims, err := j.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != requiredType {
		return nil, ErrWrongTokenType
	}

	revoked, err := j.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke adds the token's identifier to the denylist. Revoking twice is not an error.
func (j *JWTManager) Revoke(ctx context.Context, claims *Claims) error {
	var userID *uint
	if id, err := claims.UserID(); err == nil {
		userID = &id
	}

	expiresAt := j.config.Clock().Add(j.config.RefreshExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return j.denylist.Add(ctx, claims.ID, claims.TokenType, userID, expiresAt)
}

// Decode extracts claims from token without validation, for diagnostics.
// It must never be used to authorize a request; use Verify for that.
func (j *JWTManager) Decode(tokenString string) (*Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
