package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/pkg/sftp"
)

// SFTPAvatarStore - то же, что FileAvatarStore, но каталог на удаленном сервере.
// Замена файла через posix-rename@openssh.com.
type SFTPAvatarStore struct {
	client *sftp.Client
	dir    string
}

func NewSFTPAvatarStore(client *sftp.Client, remoteDir string) (*SFTPAvatarStore, error) {
	if remoteDir == "" {
		remoteDir = "/"
	}
	if err := client.MkdirAll(remoteDir); err != nil {
		return nil, fmt.Errorf("%w: sftp mkdir %s: %w", entity.ErrStorageUnavailable, remoteDir, err)
	}
	return &SFTPAvatarStore{
		client: client,
		dir:    remoteDir,
	}, nil
}

func (s *SFTPAvatarStore) path(employeeID string) string {
	return path.Join(s.dir, employeeID+avatarFileExt)
}

func (s *SFTPAvatarStore) Exists(ctx context.Context, employeeID string) (bool, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return false, err
	}

	info, err := s.client.Stat(s.path(employeeID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: sftp stat: %w", entity.ErrStorageUnavailable, err)
	}
	return info.Mode().IsRegular(), nil
}

func (s *SFTPAvatarStore) Read(ctx context.Context, employeeID string) (*entity.StoredAvatar, error) {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return nil, err
	}

	file, err := s.client.Open(s.path(employeeID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: employee %s", entity.ErrAvatarNotFound, employeeID)
		}
		return nil, fmt.Errorf("%w: sftp open: %w", entity.ErrStorageUnavailable, err)
	}
	defer file.Close()

	modTime := time.Time{}
	if info, err := file.Stat(); err == nil {
		modTime = info.ModTime()
	}

	data, err := io.ReadAll(io.LimitReader(file, entity.MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: sftp read: %w", entity.ErrStorageUnavailable, err)
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
		CreatedAt:   modTime,
		UpdatedAt:   modTime,
	}, nil
}

func (s *SFTPAvatarStore) Save(ctx context.Context, employeeID string, data []byte, contentType string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	if _, err := entity.ValidateAvatar(data, contentType); err != nil {
		return err
	}

	tmpPath := path.Join(s.dir, fmt.Sprintf(".%s-%d.tmp", employeeID, time.Now().UnixNano()))
	dst, err := s.client.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("%w: sftp create: %w", entity.ErrStorageUnavailable, err)
	}

	if _, err := dst.Write(data); err != nil {
		dst.Close()
		s.client.Remove(tmpPath)
		return fmt.Errorf("%w: sftp write: %w", entity.ErrStorageUnavailable, err)
	}
	if err := dst.Close(); err != nil {
		s.client.Remove(tmpPath)
		return fmt.Errorf("%w: sftp close: %w", entity.ErrStorageUnavailable, err)
	}

	if err := s.client.PosixRename(tmpPath, s.path(employeeID)); err != nil {
		s.client.Remove(tmpPath)
		return fmt.Errorf("%w: sftp rename: %w", entity.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *SFTPAvatarStore) Delete(ctx context.Context, employeeID string) error {
	if err := entity.ValidateEmployeeKey(employeeID); err != nil {
		return err
	}

	err := s.client.Remove(s.path(employeeID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: sftp remove: %w", entity.ErrStorageUnavailable, err)
	}
	return nil
}
