package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewTestUser returns a user with a unique id and email.
func NewTestUser() models.User {
	n := nextID()
	return models.User{
		ID:    fmt.Sprintf("user-%d", n),
		Name:  fmt.Sprintf("User %d", n),
		Email: fmt.Sprintf("user%d@test.com", n),
		Role:  "Member",
	}
}

// HashTestPassword returns a low-cost bcrypt hash of password.
func HashTestPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

// NewTestRecord returns a completed record with a unique id dated in
// January 2025.
func NewTestRecord(kind models.RecordKind, amount float64, category string, day int) models.Record {
	n := nextID()
	return models.Record{
		ID:            fmt.Sprintf("rec-%d", n),
		Kind:          kind,
		Amount:        amount,
		Category:      category,
		Description:   fmt.Sprintf("%s %d", category, n),
		OccurredOn:    models.NewDate(2025, time.January, day),
		PaymentMethod: "Card",
		Status:        models.RecordStatusCompleted,
	}
}

// CreateTestStorageEntry stores a raw key/value pair.
func CreateTestStorageEntry(t *testing.T, db *gorm.DB, key, value string) *models.StorageEntry {
	t.Helper()

	entry := &models.StorageEntry{Key: key, Value: value}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create storage entry: %v", err)
	}
	return entry
}
