package leave

import (
	"time"

	"github.com/google/uuid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	// Duration is derived from the date range; it is never set directly by
	// callers.
	Duration int    `gorm:"type:int;not null;default:1"`
	Reason   string `gorm:"type:text"`

	Status        string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_status"`
	ApprovalNotes string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

// LeaveEmployee is the minimal employee projection joined into leave
// responses.
type LeaveEmployee struct {
	ID    uuid.UUID `gorm:"primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
}

func (LeaveEmployee) TableName() string {
	return "users"
}
