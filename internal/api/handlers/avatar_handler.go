package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/St1cky1/flight-planner/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
)

// запас на заголовки multipart поверх самой картинки
const multipartOverhead = 64 * 1024

// AvatarResolver - то, что нужно хендлеру от usecase.AvatarService
type AvatarResolver interface {
	GetAvatar(ctx context.Context, employeeID, displayName string) (*entity.AvatarImage, error)
	PutAvatar(ctx context.Context, req *entity.UploadAvatarRequest) error
}

type AvatarHandler struct {
	avatars   AvatarResolver
	employees repository.IEmployeeRepository
}

func NewAvatarHandler(avatars AvatarResolver, employees repository.IEmployeeRepository) *AvatarHandler {
	return &AvatarHandler{
		avatars:   avatars,
		employees: employees,
	}
}

func avatarPath(employeeID string) string {
	return "/api/employees/" + employeeID + "/avatar"
}

func employeeIDParam(r *http.Request) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", fmt.Errorf("%w: malformed employee id", entity.ErrInvalidInput)
	}
	return id.String(), nil
}

// GetAvatar - GET /api/employees/{id}/avatar
func (h *AvatarHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.employees.GetById(r.Context(), employeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if employee == nil {
		writeError(w, fmt.Errorf("%w: %s", entity.ErrEmployeeNotFound, employeeID))
		return
	}

	img, err := h.avatars.GetAvatar(r.Context(), employee.ID, employee.DisplayName())
	if err != nil {
		// битая картинка в хранилище - ошибка сервера, а не клиента
		if errors.Is(err, entity.ErrInvalidImageContent) {
			writeErrorCode(w, codes.Internal, err)
			return
		}
		writeError(w, err)
		return
	}

	etag := `"` + entity.Checksum(img.Data) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", img.ContentType.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		log.Printf("❌ Error writing avatar for %s: %v", employeeID, err)
	}
}

// UploadAvatar - POST /api/employees/{id}/avatar, multipart поле "file"
func (h *AvatarHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, entity.MaxAvatarSize+multipartOverhead)

	data, contentType, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	exists, err := h.employees.Exists(r.Context(), employeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !exists {
		writeError(w, fmt.Errorf("%w: %s", entity.ErrEmployeeNotFound, employeeID))
		return
	}

	err = h.avatars.PutAvatar(r.Context(), &entity.UploadAvatarRequest{
		EmployeeID:  employeeID,
		Data:        data,
		ContentType: contentType,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ Аватарка сотрудника %s загружена (%d байт, %s)", employeeID, len(data), contentType)

	writeJSON(w, http.StatusCreated, entity.UploadAvatarResponse{
		Message: "Avatar uploaded successfully",
		Path:    avatarPath(employeeID),
	})
}

func readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(entity.MaxAvatarSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, "", fmt.Errorf("%w: request body exceeds %d bytes", entity.ErrPayloadTooLarge, maxBytesErr.Limit)
		}
		return nil, "", fmt.Errorf("%w: malformed multipart body: %v", entity.ErrInvalidInput, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: multipart field \"file\" is required", entity.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, entity.MaxAvatarSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read upload: %v", entity.ErrInvalidInput, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty file", entity.ErrInvalidInput)
	}

	return data, header.Header.Get("Content-Type"), nil
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
