package entity

import (
	"strings"
	"time"
)

type Employee struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Title      string    `json:"title"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayName - имя для identicon: "Имя Фамилия"
func (e *Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EmployeeDeletedMessage - событие удаления сотрудника из сервиса сотрудников
type EmployeeDeletedMessage struct {
	EmployeeID string    `json:"employee_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}
