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

// WorkstationRepositoryImpl implements WorkstationRepository for SQLite
type WorkstationRepositoryImpl struct {
	db *sqlx.DB
}

// NewWorkstationRepository creates a new SQLite workstation repository
func NewWorkstationRepository(db *sqlx.DB) ports.WorkstationRepository {
	return &WorkstationRepositoryImpl{db: db}
}

// GetByCode resolves a scanned QR code to a workstation
func (r *WorkstationRepositoryImpl) GetByCode(ctx context.Context, code string) (*models.Workstation, error) {
	var ws models.Workstation
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &ws, `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM workstations
		WHERE code = ?
	`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WorkstationNotFound(code)
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// GetByID resolves a workstation by ID
func (r *WorkstationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Workstation, error) {
	var ws models.Workstation
	err := sqlx.GetContext(ctx, querier(ctx, r.db), &ws, `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM workstations
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("workstation")
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// List returns all workstations ordered by code
func (r *WorkstationRepositoryImpl) List(ctx context.Context, includeInactive bool) ([]models.Workstation, error) {
	query := `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM workstations`
	if !includeInactive {
		query += `
		WHERE is_active = 1`
	}
	query += `
		ORDER BY code ASC`

	var stations []models.Workstation
	if err := sqlx.SelectContext(ctx, querier(ctx, r.db), &stations, query); err != nil {
		return nil, err
	}
	return stations, nil
}

// Create inserts a new workstation
func (r *WorkstationRepositoryImpl) Create(ctx context.Context, ws *models.Workstation) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO workstations (id, code, name, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ws.ID, ws.Code, ws.Name, ws.IsActive, ws.CreatedAt, ws.UpdatedAt)
	return err
}

// Update modifies name and active flag
func (r *WorkstationRepositoryImpl) Update(ctx context.Context, ws *models.Workstation) error {
	res, err := querier(ctx, r.db).ExecContext(ctx, `
		UPDATE workstations
		SET name = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, ws.Name, ws.IsActive, ws.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("workstation")
	}
	return nil
}
