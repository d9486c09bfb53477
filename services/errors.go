package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUserExists       = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductExists    = errors.New("product code already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderExists      = errors.New("order number already exists")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderWithoutItem = errors.New("order needs at least one item")
)

// isDuplicateKey reports whether err is a unique constraint violation.
// GORM translates it when TranslateError is on; the message checks cover
// connections opened without it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "sqlstate 23505")
}
