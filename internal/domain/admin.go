package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Admin is a contact configured to receive progress reports.
type Admin struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Email      string
	Department string
	Phone      string
	IsDefault  bool
	IsActive   bool
	CreatedAt  time.Time
}

// Address formats the admin as "Name <email>".
func (a Admin) Address() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}
