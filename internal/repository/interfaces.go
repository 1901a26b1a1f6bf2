package repository

import (
	"context"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - то, что нужно репозиториям от pgx (pgxpool.Pool, pgx.Conn, pgx.Tx)
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IEmployeeRepository - сотрудники (только чтение, CRUD живет в другом сервисе)
type IEmployeeRepository interface {
	GetById(ctx context.Context, id string) (*entity.Employee, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// IAvatarStore - хранилище загруженных аватарок, не больше одной на сотрудника
// Все методы сначала проверяют employeeID как ключ хранилища (entity.ValidateEmployeeKey)
// и на некорректный ключ возвращают ErrInvalidInput; иначе ошибки только ErrStorageUnavailable
// (Read дополнительно ErrAvatarNotFound / ErrInvalidImageContent, Save - ошибки валидации).
type IAvatarStore interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
	Read(ctx context.Context, employeeID string) (*entity.StoredAvatar, error)
	Save(ctx context.Context, employeeID string, data []byte, contentType string) error
	Delete(ctx context.Context, employeeID string) error
}

// IAvatarAuditRepository - журнал загрузок/удалений аватарок
type IAvatarAuditRepository interface {
	Create(ctx context.Context, audit *entity.AvatarAudit) error
	ListByEmployeeId(ctx context.Context, employeeID string) ([]entity.AvatarAudit, error)
}
