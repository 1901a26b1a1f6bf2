package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/go-chi/chi/v5"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{entity.ErrInvalidInput, http.StatusBadRequest, CodeValidation},
		{entity.ErrUnsupportedMediaType, http.StatusBadRequest, CodeValidation},
		{fmt.Errorf("%w: 3MB", entity.ErrPayloadTooLarge), http.StatusBadRequest, CodeValidation},
		{entity.ErrInvalidImageContent, http.StatusBadRequest, CodeValidation},
		{entity.ErrEmployeeNotFound, http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("%w: disk gone", entity.ErrStorageUnavailable), http.StatusServiceUnavailable, CodeUnavailable},
		{entity.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := errorCode(GRPCCode(tt.err)); got != tt.wantCode {
				t.Errorf("Expected %s, got %s", tt.wantCode, got)
			}
		})
	}
}

type stubResolver struct {
	err error
}

func (s *stubResolver) GetAvatar(ctx context.Context, employeeID, displayName string) (*entity.AvatarImage, error) {
	return nil, s.err
}

func (s *stubResolver) PutAvatar(ctx context.Context, req *entity.UploadAvatarRequest) error {
	return s.err
}

type stubEmployees struct{}

func (stubEmployees) GetById(ctx context.Context, id string) (*entity.Employee, error) {
	return &entity.Employee{ID: id, FirstName: "Jane", LastName: "Roe"}, nil
}

func (stubEmployees) Exists(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func serveGet(h *AvatarHandler) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/employees/{id}/avatar", h.GetAvatar)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employees/3f2b8c1e-7a4d-4e2b-9c11-0d5e6f7a8b9c/avatar", nil))
	return rec
}

func TestGetAvatarCorruptStoredImageIsServerError(t *testing.T) {
	rec := serveGet(NewAvatarHandler(&stubResolver{err: entity.ErrInvalidImageContent}, stubEmployees{}))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestGetAvatarStorageUnavailable(t *testing.T) {
	rec := serveGet(NewAvatarHandler(&stubResolver{err: entity.ErrStorageUnavailable}, stubEmployees{}))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestHealthDegraded(t *testing.T) {
	h := NewHealthHandler(map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestEtagMatches(t *testing.T) {
	etag := `"abc"`
	if !etagMatches(`"x", W/"abc"`, etag) || !etagMatches("*", etag) {
		t.Error("Expected match")
	}
	if etagMatches("", etag) || etagMatches(`"abd"`, etag) {
		t.Error("Expected no match")
	}
}
