package entity

import "time"

// MaxAvatarSize - максимальный размер загружаемой аватарки (2MB)
const MaxAvatarSize = 2 * 1024 * 1024

// StoredAvatar - аватарка, загруженная сотрудником
type StoredAvatar struct {
	EmployeeID  string    `json:"employee_id"`
	Data        []byte    `json:"-"`
	ContentType MediaType `json:"content_type"`
	FileSize    int       `json:"file_size"`
	Checksum    string    `json:"checksum"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvatarImage - то, что отдаем клиенту: загруженная картинка или identicon
type AvatarImage struct {
	Data        []byte
	ContentType MediaType
	Generated   bool
}

type UploadAvatarRequest struct {
	EmployeeID  string
	Data        []byte
	ContentType string
}

type UploadAvatarResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}
