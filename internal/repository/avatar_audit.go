package repository

import (
	"context"

	"github.com/St1cky1/flight-planner/internal/entity"
)

type AvatarAuditRepository struct {
	db DBTX
}

func NewAvatarAuditRepository(db DBTX) *AvatarAuditRepository {
	return &AvatarAuditRepository{
		db: db,
	}
}

func (r *AvatarAuditRepository) Create(ctx context.Context, audit *entity.AvatarAudit) error {
	query := `
	INSERT INTO "avatar_audit" (employee_id, action, content_type, file_size, checksum, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		audit.EmployeeID,
		audit.Action,
		audit.ContentType,
		audit.FileSize,
		audit.Checksum,
		audit.ChangedAt,
	).Scan(&audit.ID)
	if err != nil {
		return pgError(err)
	}
	return nil
}

// ListByEmployeeId - история аватарки сотрудника, новые сверху
func (r *AvatarAuditRepository) ListByEmployeeId(ctx context.Context, employeeID string) ([]entity.AvatarAudit, error) {
	query := `
	SELECT id, employee_id::text, action, content_type, file_size, checksum, changed_at
	FROM "avatar_audit"
	WHERE employee_id = $1
	ORDER BY changed_at DESC
	`

	rows, err := r.db.Query(ctx, query, employeeID)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	var audits []entity.AvatarAudit
	for rows.Next() {
		var audit entity.AvatarAudit
		err := rows.Scan(
			&audit.ID,
			&audit.EmployeeID,
			&audit.Action,
			&audit.ContentType,
			&audit.FileSize,
			&audit.Checksum,
			&audit.ChangedAt,
		)
		if err != nil {
			return nil, pgError(err)
		}
		audits = append(audits, audit)
	}

	if err := rows.Err(); err != nil {
		return nil, pgError(err)
	}
	return audits, nil
}
