package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/St1cky1/flight-planner/internal/repository"
)

// IdenticonGenerator - генератор аватарки по умолчанию
type IdenticonGenerator interface {
	Generate(identityKey string) ([]byte, entity.MediaType, error)
}

// AvatarEventPublisher интерфейс для публикации событий аватарок в RabbitMQ
type AvatarEventPublisher interface {
	PublishAvatarEvent(ctx context.Context, event *entity.AvatarEvent) error
}

type AvatarService struct {
	store      repository.IAvatarStore
	identicons IdenticonGenerator
	publisher  AvatarEventPublisher
	pending    sync.WaitGroup
}

// NewAvatarService - publisher может быть nil, тогда события не отправляются
func NewAvatarService(
	store repository.IAvatarStore,
	identicons IdenticonGenerator,
	publisher AvatarEventPublisher,
) *AvatarService {
	return &AvatarService{
		store:      store,
		identicons: identicons,
		publisher:  publisher,
	}
}

// GetAvatar отдает загруженную аватарку или identicon.
// Существование сотрудника проверяет вызывающий код.
func (s *AvatarService) GetAvatar(ctx context.Context, employeeID, displayName string) (*entity.AvatarImage, error) {
	exists, err := s.store.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if exists {
		avatar, err := s.store.Read(ctx, employeeID)
		switch {
		case err == nil:
			return &entity.AvatarImage{
				Data:        avatar.Data,
				ContentType: avatar.ContentType,
			}, nil
		case errors.Is(err, entity.ErrAvatarNotFound):
			// удалили между Exists и Read - отдаем identicon
		default:
			return nil, err
		}
	}

	data, contentType, err := s.identicons.Generate(employeeID + displayName)
	if err != nil {
		return nil, err
	}

	return &entity.AvatarImage{
		Data:        data,
		ContentType: contentType,
		Generated:   true,
	}, nil
}

// PutAvatar сохраняет загруженную аватарку, ошибки хранилища отдаются как есть
func (s *AvatarService) PutAvatar(ctx context.Context, req *entity.UploadAvatarRequest) error {
	if err := s.store.Save(ctx, req.EmployeeID, req.Data, req.ContentType); err != nil {
		return err
	}

	s.sendAvatarEvent(&entity.AvatarEvent{
		EmployeeID:  req.EmployeeID,
		Action:      entity.ActionUpload,
		ContentType: entity.NormalizeContentType(req.ContentType).String(),
		FileSize:    len(req.Data),
		Checksum:    entity.Checksum(req.Data),
		Timestamp:   time.Now(),
	})

	return nil
}

// DeleteAvatar удаляет загруженную аватарку (вызывается при удалении сотрудника)
func (s *AvatarService) DeleteAvatar(ctx context.Context, employeeID string) error {
	if err := s.store.Delete(ctx, employeeID); err != nil {
		return err
	}

	s.sendAvatarEvent(&entity.AvatarEvent{
		EmployeeID: employeeID,
		Action:     entity.ActionDelete,
		Timestamp:  time.Now(),
	})

	return nil
}

// HasAvatar проверяет, есть ли у сотрудника загруженная аватарка
func (s *AvatarService) HasAvatar(ctx context.Context, employeeID string) (bool, error) {
	return s.store.Exists(ctx, employeeID)
}

// Асинхронная отправка события, ошибка только логируется
func (s *AvatarService) sendAvatarEvent(event *entity.AvatarEvent) {
	if s.publisher == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.publisher.PublishAvatarEvent(context.Background(), event); err != nil {
			log.Printf("❌ Ошибка отправки события аватарки в RabbitMQ: %v", err)
		}
	}()
}

// WaitEvents ждет, пока уйдут все отправленные события (перед выходом из процесса)
func (s *AvatarService) WaitEvents() {
	s.pending.Wait()
}
