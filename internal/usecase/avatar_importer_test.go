package usecase

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/St1cky1/flight-planner/internal/identicon"
	"github.com/St1cky1/flight-planner/internal/repository"
)

// MockEmployeeRepository - мок для IEmployeeRepository, known - существующие сотрудники
type MockEmployeeRepository struct {
	known map[string]bool
}

var _ repository.IEmployeeRepository = (*MockEmployeeRepository)(nil)

func knownEmployees(ids ...string) *MockEmployeeRepository {
	m := &MockEmployeeRepository{known: map[string]bool{}}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

func (m *MockEmployeeRepository) GetById(ctx context.Context, id string) (*entity.Employee, error) {
	if !m.known[id] {
		return nil, nil
	}
	return &entity.Employee{ID: id}, nil
}

func (m *MockEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	return m.known[id], nil
}

func writeImportFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestImportAvatars(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "e1.png", pngPayload(128, 0x01))
	writeImportFile(t, dir, "e2.PNG", pngPayload(128, 0x02))
	writeImportFile(t, dir, "e3.png", pngPayload(128, 0x03))
	writeImportFile(t, dir, "notes.txt", []byte("ignored"))

	var mu sync.Mutex
	saved := map[string]string{}

	store := &MockAvatarStore{
		ExistsFunc: func(ctx context.Context, employeeID string) (bool, error) {
			return employeeID == "e3", nil
		},
		SaveFunc: func(ctx context.Context, employeeID string, data []byte, contentType string) error {
			mu.Lock()
			defer mu.Unlock()
			saved[employeeID] = contentType
			return nil
		},
	}
	service := NewAvatarService(store, identicon.New(), nil)

	summary, err := ImportAvatars(context.Background(), service, knownEmployees("e1", "e2", "e3"), dir, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Total != 3 || summary.Uploaded != 2 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if saved["e1"] != "image/png" || saved["e2"] != "image/png" {
		t.Errorf("Unexpected saved avatars %v", saved)
	}
	if _, ok := saved["e3"]; ok {
		t.Error("Expected e3 to be skipped")
	}
}

func TestImportAvatarsReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "e1.png", pngPayload(128, 0x01))
	writeImportFile(t, dir, "e2.jpg", pngPayload(128, 0x02))

	store := &MockAvatarStore{
		SaveFunc: func(ctx context.Context, employeeID string, data []byte, contentType string) error {
			_, err := entity.ValidateAvatar(data, contentType)
			return err
		},
	}
	service := NewAvatarService(store, identicon.New(), nil)

	summary, err := ImportAvatars(context.Background(), service, knownEmployees("e1", "e2"), dir, 0)
	if err == nil {
		t.Fatal("Expected an error when an upload fails")
	}
	if summary.Uploaded != 1 || summary.Failed != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestImportAvatarsMissingDir(t *testing.T) {
	service := NewAvatarService(&MockAvatarStore{}, identicon.New(), nil)

	_, err := ImportAvatars(context.Background(), service, knownEmployees(), filepath.Join(t.TempDir(), "missing"), 3)
	if err == nil {
		t.Fatal("Expected an error for a missing directory")
	}
}

func TestImportAvatarsUnknownEmployeeIsNotStored(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeImportFile(t, dir, "e1.png", pngPayload(128, 0x01))
	writeImportFile(t, dir, "no-such-employee.png", pngPayload(128, 0x02))

	store, err := repository.NewFileAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	service := NewAvatarService(store, identicon.New(), nil)

	summary, err := ImportAvatars(ctx, service, knownEmployees("e1"), dir, 3)
	if err == nil {
		t.Fatal("Expected an error for a file of an unknown employee")
	}
	if summary.Total != 2 || summary.Uploaded != 1 || summary.Failed != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}

	exists, err := store.Exists(ctx, "no-such-employee")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if exists {
		t.Error("Expected no avatar stored for an unknown employee")
	}
	if exists, _ := store.Exists(ctx, "e1"); !exists {
		t.Error("Expected e1 avatar to be stored")
	}
}
