package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/pwambugu/glassauth/internal/models"
)

// bcryptCost matches the fixed work factor the service has always used.
const bcryptCost = 10

var (
	// ErrEmailTaken is returned when the email column's unique constraint
	// rejects an insert.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a lookup matches no user.
	ErrNotFound = errors.New("user not found")

	// ErrNotVerified is returned on login when verification is required
	// and the account has not completed it.
	ErrNotVerified = errors.New("email not verified")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Signup(ctx context.Context, name, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Verify(ctx context.Context, token string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB

	// requireVerified gates Authenticate on a completed email verification.
	requireVerified bool
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, requireVerified bool) *UserService {
	return &UserService{db: db, requireVerified: requireVerified}
}

// Signup hashes the password and inserts a new user row. Uniqueness is
// enforced by the store's UNIQUE constraint on email; a constraint
// violation is mapped to ErrEmailTaken, so concurrent signups with the
// same address cannot both succeed.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		VerifyToken:  uuid.New().String(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, verify_token) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.VerifyToken)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if s.requireVerified && !user.Verified() {
		return models.User{}, ErrNotVerified
	}

	return user, nil
}

// Verify marks the account holding the given verification token as
// verified and returns it. An unknown token yields ErrNotFound.
func (s *UserService) Verify(ctx context.Context, token string) (models.User, error) {
	var id string
	row := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE verify_token = ?", token)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET verified_at = CURRENT_TIMESTAMP, verify_token = NULL WHERE id = ?", id)
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, verified_at, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.VerifiedAt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByEmail retrieves a single user by email, including the password hash.
func (s *UserService) getUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, verified_at, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.VerifiedAt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
