package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "pointage/internal/errors"
	"pointage/models"
	"pointage/ports"
)

// UserRepositoryImpl implements UserRepository for SQLite
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQLite user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &user, `
		SELECT id, username, password_hash, full_name, role, workstation_id, is_active, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeUserNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &user, `
		SELECT id, username, password_hash, full_name, role, workstation_id, is_active, created_at, updated_at
		FROM users
		WHERE username = ?
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeUserNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, full_name, role, workstation_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Username, user.PasswordHash, user.FullName, user.Role,
		user.WorkstationID, user.IsActive, user.CreatedAt, user.UpdatedAt)
	return err
}
