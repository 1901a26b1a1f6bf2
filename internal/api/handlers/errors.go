package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/St1cky1/flight-planner/internal/entity"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
)

const (
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeUnavailable  = "UNAVAILABLE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// GRPCCode - код ошибки, общий для gRPC и HTTP (HTTP статус считается из него)
func GRPCCode(err error) codes.Code {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrUnsupportedMediaType),
		errors.Is(err, entity.ErrPayloadTooLarge),
		errors.Is(err, entity.ErrInvalidImageContent):
		return codes.InvalidArgument
	case errors.Is(err, entity.ErrEmployeeNotFound),
		errors.Is(err, entity.ErrAvatarNotFound):
		return codes.NotFound
	case errors.Is(err, entity.ErrStorageUnavailable):
		return codes.Unavailable
	case errors.Is(err, entity.ErrUnauthorized):
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

func errorCode(code codes.Code) string {
	switch code {
	case codes.InvalidArgument:
		return CodeValidation
	case codes.NotFound:
		return CodeNotFound
	case codes.Unavailable:
		return CodeUnavailable
	case codes.Unauthenticated:
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorCode(w, GRPCCode(err), err)
}

func writeErrorCode(w http.ResponseWriter, code codes.Code, err error) {
	message := err.Error()
	if code == codes.Internal {
		log.Printf("❌ Internal error: %v", err)
		message = "internal server error"
	}

	writeJSON(w, runtime.HTTPStatusFromCode(code), ErrorResponse{
		Error: ErrorBody{Code: errorCode(code), Message: message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}
