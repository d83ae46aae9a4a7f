package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ListFilter is the conjunction of optional predicates used by List.
type ListFilter struct {
	Status     string
	LeaveType  string
	EmployeeID string
	StartFrom  *time.Time // startDate >= StartFrom
	EndUntil   *time.Time // endDate <= EndUntil
	SortBy     string
	Order      string
	Page       int
	Limit      int
}

// EmployeeFilter scopes a listing to one employee, ordered by createdAt desc.
type EmployeeFilter struct {
	Status string
	Page   int
	Limit  int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindFiltered(ctx context.Context, f ListFilter) ([]Leave, int64, error)
	FindByEmployee(ctx context.Context, employeeID string, f EmployeeFilter) ([]Leave, int64, error)
	FindApprovedByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn returns the connection a statement should run on: the pool by
// default, the caller's transaction when one was bound via WithTx.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

// sortColumns is the explicit allow-list for List sorting; anything else
// silently falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"status":    "status",
	"duration":  "duration",
}

func (r *repository) FindFiltered(ctx context.Context, f ListFilter) ([]Leave, int64, error) {
	q := r.conn(ctx).Model(&Leave{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.LeaveType != "" {
		q = q.Where("leave_type = ?", f.LeaveType)
	}
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.StartFrom != nil {
		q = q.Where("start_date >= ?", *f.StartFrom)
	}
	if f.EndUntil != nil {
		q = q.Where("end_date <= ?", *f.EndUntil)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.Order == "asc" {
		direction = "ASC"
	}

	var leaves []Leave
	err := q.
		Preload("Employee").
		Order(column + " " + direction).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, f EmployeeFilter) ([]Leave, int64, error) {
	q := r.conn(ctx).Model(&Leave{}).Where("employee_id = ?", employeeID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []Leave
	err := q.
		Preload("Employee").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindApprovedByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Leave{}, "id = ?", id).Error
}
