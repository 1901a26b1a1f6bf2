package entity

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrAvatarNotFound       = errors.New("avatar not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrInvalidImageContent  = errors.New("invalid image content")
	ErrStorageUnavailable   = errors.New("avatar storage unavailable")
	ErrUnauthorized         = errors.New("missing or invalid api key")
)

// IsRetryable - только недоступность хранилища имеет смысл повторять
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
