package repository

import (
	"context"
	"errors"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

// GetById - получаем сотрудника по id; nil, nil если не найден
func (r *EmployeeRepository) GetById(ctx context.Context, id string) (*entity.Employee, error) {
	query := `
	SELECT id::text, first_name, last_name, email, department, title, active, created_at, updated_at
	FROM "employee"
	WHERE id = $1
	`
	var employee entity.Employee

	err := r.db.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Department,
		&employee.Title,
		&employee.Active,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, pgError(err)
	}

	return &employee, nil
}

// Exists - есть ли сотрудник с таким id
func (r *EmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM "employee" WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, pgError(err)
	}
	return exists, nil
}
