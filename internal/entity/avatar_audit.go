package entity

import "time"

type ActionType string

const (
	ActionUpload ActionType = "Upload"
	ActionDelete ActionType = "Delete"
)

type AvatarAudit struct {
	ID          int        `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Action      ActionType `json:"action"`
	ContentType *string    `json:"content_type"`
	FileSize    int        `json:"file_size"`
	Checksum    *string    `json:"checksum"`
	ChangedAt   time.Time  `json:"changed_at"`
}

// AvatarEvent - сообщение, которое уходит в RabbitMQ после загрузки/удаления
type AvatarEvent struct {
	EmployeeID  string     `json:"employee_id"`
	Action      ActionType `json:"action"`
	ContentType string     `json:"content_type,omitempty"`
	FileSize    int        `json:"file_size,omitempty"`
	Checksum    string     `json:"checksum,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}
