package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/blog-backend/internal/apperror"
	"github.com/sakif/blog-backend/internal/model"
)

// newTestDB returns a DB backed by an in-memory SQLite database.
// Each test gets its own database; Close is handled by t.Cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, db *DB, email, username string) *model.User {
	t.Helper()
	user := &model.User{
		Fullname:   "Test User",
		Email:      email,
		Password:   "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		Username:   username,
		ProfileImg: "https://example.com/avatar.png",
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Username: "jane",
	}

	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
	if user.UpdatedAt.IsZero() {
		t.Error("Create() did not set user.UpdatedAt")
	}
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "jane@example.com", "jane")

	dup := &model.User{
		Fullname: "Other Jane",
		Email:    "jane@example.com",
		Username: "jane2",
	}

	err := db.Create(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Email already exists" {
		t.Errorf("Create() conflict message = %v, want %q", err, "Email already exists")
	}

	// The prior record must be unmodified.
	existing, getErr := db.GetByEmail(context.Background(), "jane@example.com")
	if getErr != nil {
		t.Fatalf("GetByEmail() after conflict error = %v", getErr)
	}
	if existing.Fullname != "Test User" {
		t.Errorf("existing record Fullname = %q, conflict must not overwrite", existing.Fullname)
	}
}

func TestCreate_DuplicateEmailDifferentCaseIsConflict(t *testing.T) {
	// Email comparison is case-insensitive (COLLATE NOCASE).
	db := newTestDB(t)
	createTestUser(t, db, "jane@example.com", "jane")

	dup := &model.User{
		Fullname: "Shouting Jane",
		Email:    "JANE@EXAMPLE.COM",
		Username: "jane3",
	}

	if err := db.Create(context.Background(), dup); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict for case-variant email", err)
	}
}

func TestCreate_GoogleAccountRoundTrips(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Fullname:   "Jane Doe",
		Email:      "jane@gmail.com",
		Username:   "jane",
		ProfileImg: "https://lh3.googleusercontent.com/a/photo=s384-c",
		GoogleAuth: true,
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := db.GetByEmail(context.Background(), "jane@gmail.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if !got.GoogleAuth {
		t.Error("GoogleAuth flag was not persisted")
	}
	if got.Password != "" {
		t.Errorf("Password = %q, want empty for a Google account", got.Password)
	}
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGetByEmail_Found(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "jane@example.com", "jane")

	got, err := db.GetByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail() ID = %q, want %q", got.ID, created.ID)
	}
	if got.Username != "jane" {
		t.Errorf("GetByEmail() Username = %q, want %q", got.Username, "jane")
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestGetByID_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "jane@example.com", "jane")

	got, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("GetByID() Email = %q", got.Email)
	}

	if _, err := db.GetByID(context.Background(), "no-such-id"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// USERNAME TESTS
// =========================================================================

func TestUsernameExists(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "jane@example.com", "jane")

	taken, err := db.UsernameExists(context.Background(), "jane")
	if err != nil {
		t.Fatalf("UsernameExists() error = %v", err)
	}
	if !taken {
		t.Error("UsernameExists(jane) = false, want true")
	}

	free, err := db.UsernameExists(context.Background(), "someone-else")
	if err != nil {
		t.Fatalf("UsernameExists() error = %v", err)
	}
	if free {
		t.Error("UsernameExists(someone-else) = true, want false")
	}
}
