package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/St1cky1/flight-planner/internal/config"
	"github.com/St1cky1/flight-planner/internal/repository"
)

func TestOpenAvatarStoreFS(t *testing.T) {
	cfg := &config.Config{AvatarStorage: config.StorageFS, AvatarDir: filepath.Join(t.TempDir(), "avatars")}

	store, closeFn, err := OpenAvatarStore(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer closeFn()

	if _, ok := store.(*repository.FileAvatarStore); !ok {
		t.Errorf("Expected *repository.FileAvatarStore, got %T", store)
	}
}

func TestOpenAvatarStorePostgresNeedsDB(t *testing.T) {
	cfg := &config.Config{AvatarStorage: config.StoragePostgres}

	if _, _, err := OpenAvatarStore(context.Background(), cfg, nil); err == nil {
		t.Error("Expected an error without a database")
	}
}

func TestOpenAvatarStoreUnknown(t *testing.T) {
	cfg := &config.Config{AvatarStorage: "s3"}

	if _, _, err := OpenAvatarStore(context.Background(), cfg, nil); err == nil {
		t.Error("Expected an error for unknown storage")
	}
}
