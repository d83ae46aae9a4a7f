package announcement

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListFilter is the conjunction of optional predicates used by List. A
// department filter still matches company-wide announcements (NULL or
// empty department).
type ListFilter struct {
	Category   string
	Department string
	Page       int
	Limit      int
}

//go:generate mockgen -source=announcement_repo.go -destination=mock/announcement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Announcement) error
	FindByID(ctx context.Context, id string) (*Announcement, error)
	FindFiltered(ctx context.Context, f ListFilter) ([]Announcement, int64, error)
	Update(ctx context.Context, a *Announcement) error
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

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.conn(ctx).
		Preload("CreatedBy").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindFiltered(ctx context.Context, f ListFilter) ([]Announcement, int64, error) {
	q := r.conn(ctx).Model(&Announcement{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Department != "" {
		q = q.Where("department = ? OR department IS NULL OR department = ''", f.Department)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []Announcement
	err := q.
		Preload("CreatedBy").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&announcements).Error
	return announcements, total, err
}

func (r *repository) Update(ctx context.Context, a *Announcement) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Announcement{}, "id = ?", id).Error
}
