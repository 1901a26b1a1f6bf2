package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/St1cky1/flight-planner/internal/entity"
)

const avatarFileExt = ".avatar"

// FileAvatarStore хранит по одному файлу <employee_id>.avatar в каталоге.
// Тип картинки определяется по сигнатуре при чтении.
// Запись идет во временный файл в том же каталоге и затем rename поверх старого.
type FileAvatarStore struct {
	dir string
}

func NewFileAvatarStore(dir string) (*FileAvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create avatar dir: %w", entity.ErrStorageUnavailable, err)
	}
	return &FileAvatarStore{
		dir: dir,
	}, nil
}

func (s *FileAvatarStore) path(employeeID string) string {
	return filepath.Join(s.dir, employeeID+avatarFileExt)
}

// Exists - есть ли файл аватарки
func (s *FileAvatarStore) Exists(ctx context.Context, employeeID string) (bool, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return false, err
	}

	info, err := os.Stat(s.path(employeeID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	return info.Mode().IsRegular(), nil
}

// Read - читает аватарку; файл открывается один раз, поэтому rename во время чтения не страшен
func (s *FileAvatarStore) Read(ctx context.Context, employeeID string) (*entity.StoredAvatar, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path(employeeID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: employee %s", entity.ErrAvatarNotFound, employeeID)
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	data, err := io.ReadAll(io.LimitReader(file, entity.MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}
	if len(data) > entity.MaxAvatarSize {
		return nil, fmt.Errorf("%w: stored avatar exceeds %d bytes", entity.ErrInvalidImageContent, entity.MaxAvatarSize)
	}

	mediaType, err := entity.CheckStoredAvatar(data, "")
	if err != nil {
		return nil, err
	}

	return &entity.StoredAvatar{
		EmployeeID:  employeeID,
		Data:        data,
		ContentType: mediaType,
		FileSize:    len(data),
		Checksum:    entity.Checksum(data),
		CreatedAt:   info.ModTime(),
		UpdatedAt:   info.ModTime(),
	}, nil
}

// Save - валидирует и атомарно заменяет аватарку
func (s *FileAvatarStore) Save(ctx context.Context, employeeID string, data []byte, contentType string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	if _, err := entity.ValidateAvatar(data, contentType); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+employeeID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	if err := os.Rename(tmpPath, s.path(employeeID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	return nil
}

// Delete - удаляет файл; отсутствие файла не ошибка
func (s *FileAvatarStore) Delete(ctx context.Context, employeeID string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	err := os.Remove(s.path(employeeID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}
	return nil
}

func writeAndSync(file *os.File, data []byte) error {
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	if err := file.Chmod(0o644); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
