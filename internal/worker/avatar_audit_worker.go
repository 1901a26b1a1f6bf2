package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/St1cky1/flight-planner/internal/repository"
)

// AvatarAuditWorker сохраняет события аватарок из RabbitMQ в avatar_audit
type AvatarAuditWorker struct {
	auditRepo repository.IAvatarAuditRepository
}

func NewAvatarAuditWorker(auditRepo repository.IAvatarAuditRepository) *AvatarAuditWorker {
	return &AvatarAuditWorker{auditRepo: auditRepo}
}

func (w *AvatarAuditWorker) Handle(ctx context.Context, body []byte) error {
	var event entity.AvatarEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	audit, err := convertToAvatarAudit(&event)
	if err != nil {
		return err
	}

	if err := w.auditRepo.Create(ctx, audit); err != nil {
		return fmt.Errorf("save audit: %w", err)
	}

	log.Printf("💾 Аудит сохранен: %s аватарки сотрудника %s", audit.Action, audit.EmployeeID)
	return nil
}

func convertToAvatarAudit(event *entity.AvatarEvent) (*entity.AvatarAudit, error) {
	if event.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee_id is empty", ErrMalformedMessage)
	}
	if event.Action != entity.ActionUpload && event.Action != entity.ActionDelete {
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformedMessage, event.Action)
	}

	audit := &entity.AvatarAudit{
		EmployeeID: event.EmployeeID,
		Action:     event.Action,
		FileSize:   event.FileSize,
		ChangedAt:  event.Timestamp,
	}
	if event.ContentType != "" {
		contentType := event.ContentType
		audit.ContentType = &contentType
	}
	if event.Checksum != "" {
		checksum := event.Checksum
		audit.Checksum = &checksum
	}
	return audit, nil
}
