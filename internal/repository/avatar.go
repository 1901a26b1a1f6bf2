package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// PostgresAvatarStore хранит аватарки в таблице employee_avatar (bytea).
// Upsert одной строкой атомарен для читателей.
type PostgresAvatarStore struct {
	db DBTX
}

func NewPostgresAvatarStore(db DBTX) *PostgresAvatarStore {
	return &PostgresAvatarStore{
		db: db,
	}
}

// Exists - есть ли загруженная аватарка
func (s *PostgresAvatarStore) Exists(ctx context.Context, employeeID string) (bool, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM "employee_avatar" WHERE employee_id = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, pgError(err)
	}

	return exists, nil
}

// Read - получает аватарку по employee_id
func (s *PostgresAvatarStore) Read(ctx context.Context, employeeID string) (*entity.StoredAvatar, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return nil, err
	}

	query := `
	SELECT employee_id::text, content_type, data, file_size, checksum, created_at, updated_at
	FROM "employee_avatar"
	WHERE employee_id = $1
	`

	var avatar entity.StoredAvatar
	var contentType string

	err := s.db.QueryRow(ctx, query, employeeID).Scan(
		&avatar.EmployeeID,
		&contentType,
		&avatar.Data,
		&avatar.FileSize,
		&avatar.Checksum,
		&avatar.CreatedAt,
		&avatar.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: employee %s", entity.ErrAvatarNotFound, employeeID)
		}
		return nil, pgError(err)
	}

	mediaType, err := entity.CheckStoredAvatar(avatar.Data, entity.MediaType(contentType))
	if err != nil {
		return nil, err
	}
	avatar.ContentType = mediaType

	return &avatar, nil
}

// Save - создает или перезаписывает аватарку
func (s *PostgresAvatarStore) Save(ctx context.Context, employeeID string, data []byte, contentType string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	mediaType, err := entity.ValidateAvatar(data, contentType)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO "employee_avatar" (employee_id, content_type, data, file_size, checksum)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (employee_id) DO UPDATE SET
	    content_type = $2,
	    data = $3,
	    file_size = $4,
	    checksum = $5,
	    updated_at = CURRENT_TIMESTAMP
	`

	_, err = s.db.Exec(ctx, query, employeeID, mediaType.String(), data, len(data), entity.Checksum(data))
	if err != nil {
		return pgError(err)
	}

	return nil
}

// Delete - удаляет аватарку; отсутствие аватарки не ошибка
func (s *PostgresAvatarStore) Delete(ctx context.Context, employeeID string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	query := `DELETE FROM "employee_avatar" WHERE employee_id = $1`
	if _, err := s.db.Exec(ctx, query, employeeID); err != nil {
		return pgError(err)
	}
	return nil
}

// pgError переводит ошибки pgx в доменные
func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", entity.ErrEmployeeNotFound, pgErr.Detail)
		case pgInvalidTextRepr:
			return fmt.Errorf("%w: %s", entity.ErrInvalidInput, pgErr.Message)
		}
	}
	return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
}
