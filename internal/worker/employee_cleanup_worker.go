package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/St1cky1/flight-planner/internal/entity"
)

// AvatarDeleter - usecase.AvatarService
type AvatarDeleter interface {
	DeleteAvatar(ctx context.Context, employeeID string) error
}

// EmployeeCleanupWorker удаляет аватарку, когда сервис сотрудников сообщает об удалении
type EmployeeCleanupWorker struct {
	avatars AvatarDeleter
}

func NewEmployeeCleanupWorker(avatars AvatarDeleter) *EmployeeCleanupWorker {
	return &EmployeeCleanupWorker{avatars: avatars}
}

func (w *EmployeeCleanupWorker) Handle(ctx context.Context, body []byte) error {
	var msg entity.EmployeeDeletedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if msg.EmployeeID == "" {
		return fmt.Errorf("%w: employee_id is empty", ErrMalformedMessage)
	}

	if err := w.avatars.DeleteAvatar(ctx, msg.EmployeeID); err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return err
	}

	log.Printf("🗑️  Аватарка удаленного сотрудника %s удалена", msg.EmployeeID)
	return nil
}
