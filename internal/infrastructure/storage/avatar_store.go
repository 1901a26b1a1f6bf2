package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/St1cky1/flight-planner/internal/config"
	"github.com/St1cky1/flight-planner/internal/infrastructure/client"
	"github.com/St1cky1/flight-planner/internal/repository"
)

// OpenAvatarStore - выбирает хранилище аватарок по AVATAR_STORAGE.
// Возвращаемый closer освобождает соединение (для sftp), для остальных no-op.
func OpenAvatarStore(ctx context.Context, cfg *config.Config, db repository.DBTX) (repository.IAvatarStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.AvatarStorage {
	case config.StorageFS:
		store, err := repository.NewFileAvatarStore(cfg.AvatarDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ Аватарки хранятся в каталоге %s", cfg.AvatarDir)
		return store, noop, nil

	case config.StoragePostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("postgres avatar storage requires a database connection")
		}
		log.Println("✅ Аватарки хранятся в PostgreSQL")
		return repository.NewPostgresAvatarStore(db), noop, nil

	case config.StorageSFTP:
		sftpClient, err := client.NewSFTPClient(ctx, client.SFTPConfig{
			Addr:           cfg.SFTP.Addr(),
			User:           cfg.SFTP.User,
			Password:       cfg.SFTP.Password,
			KnownHostsFile: cfg.SFTP.KnownHostsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSFTPAvatarStore(sftpClient.Client, cfg.SFTP.RemoteDir)
		if err != nil {
			sftpClient.Close()
			return nil, nil, err
		}
		log.Printf("✅ Аватарки хранятся на SFTP %s:%s", cfg.SFTP.Addr(), cfg.SFTP.RemoteDir)
		return store, sftpClient.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown avatar storage %q", cfg.AvatarStorage)
	}
}
