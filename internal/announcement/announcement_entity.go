package announcement

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(20);not null;index"`
	// Department scopes visibility; nil or empty means company-wide.
	Department *string `gorm:"type:varchar(100);index"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CreatedBy *AnnouncementAuthor `gorm:"foreignKey:CreatedByID;references:ID"`
}

// AnnouncementAuthor is the minimal creator projection joined into
// announcement responses.
type AnnouncementAuthor struct {
	ID    uuid.UUID `gorm:"primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
}

func (AnnouncementAuthor) TableName() string {
	return "users"
}
