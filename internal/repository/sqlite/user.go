package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/blog-backend/internal/apperror"
	"github.com/sakif/blog-backend/internal/model"
	"github.com/sakif/blog-backend/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user row, assigning the internal ID and timestamps.
//
// A UNIQUE violation on the email column is reported as
// apperror.Conflict("Email already exists") — that message is the API's
// duplicate-signup contract. A violation on username can only mean the
// allocator raced another signup for the same handle; it is surfaced as a
// generic error and the client can simply retry.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, fullname, email, password, username, profile_img, google_auth, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Fullname,
		user.Email,
		user.Password,
		user.Username,
		user.ProfileImg,
		user.GoogleAuth,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return apperror.Conflict("Email already exists")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByEmail retrieves a user by email. The column is COLLATE NOCASE, so
// the lookup is case-insensitive regardless of how the caller cased it.
// Returns apperror.ErrNotFound if no account exists.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email, "Email not found")
}

// GetByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no account exists.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id, "User not found")
}

// UsernameExists reports whether the handle is already taken.
func (db *DB) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking username %q: %w", username, err)
	}
	return count > 0, nil
}

const userColumns = `id, fullname, email, password, username, profile_img, google_auth, created_at, updated_at`

// getOne runs a single-row user query. notFoundMsg becomes the AppError
// message when no row matches; the two lookups report it differently.
func (db *DB) getOne(ctx context.Context, query string, arg any, notFoundMsg string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Fullname,
		&u.Email,
		&u.Password,
		&u.Username,
		&u.ProfileImg,
		&u.GoogleAuth,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(notFoundMsg)
		}
		return nil, fmt.Errorf("sqlite: querying user: %w", err)
	}

	return &u, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given column. The driver reports these as
// "constraint failed: UNIQUE constraint failed: users.email (2067)", so a
// substring match on the qualified column name is enough to tell which
// constraint fired.
func isUniqueViolation(err error, column string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}
