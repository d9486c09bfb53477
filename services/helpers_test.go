package services

import (
	"testing"

	"github.com/nmdong/VietThanhProductions/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	store, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.GetDB()
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
