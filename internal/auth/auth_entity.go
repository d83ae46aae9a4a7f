package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the authentication principal. The leave and announcement modules
// reference it only by id (weak reference) plus the minimal projection they
// join for responses.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:text;not null;uniqueIndex"`
	Password   string    `gorm:"type:text;not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'"`
	Department string    `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
