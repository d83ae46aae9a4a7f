package announcement

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	announcementerrors "leavedesk/internal/announcement/errors"
	"leavedesk/internal/authz"
	"leavedesk/internal/shared/response"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

//go:generate mockgen -source=announcement_service.go -destination=mock/announcement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, createdByID string, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	GetByID(ctx context.Context, id string) (AnnouncementResponse, error)
	List(ctx context.Context, q ListAnnouncementsQuery) ([]AnnouncementResponse, response.PaginationMeta, error)
	Update(ctx context.Context, id string, req UpdateAnnouncementRequest, actorID, actorRole string) (AnnouncementResponse, error)
	Delete(ctx context.Context, id string, actorID, actorRole string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("announcement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("announcement.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, createdByID string, req CreateAnnouncementRequest) (AnnouncementResponse, error) {
	creatorUUID, err := uuid.Parse(createdByID)
	if err != nil {
		return AnnouncementResponse{}, announcementerrors.ErrInvalidCreatorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create announcement begin tx failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a := &Announcement{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Department:  req.Department,
		CreatedByID: creatorUUID,
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create announcement persist failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create announcement commit failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	s.logger.Info("create announcement success",
		zap.String("announcement_id", a.ID.String()),
		zap.String("category", a.Category),
	)

	if created, err := s.repo.FindByID(ctx, a.ID.String()); err == nil {
		return mapToResponse(*created), nil
	}
	return mapToResponse(*a), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AnnouncementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AnnouncementResponse{}, announcementerrors.ErrInvalidAnnouncementID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnouncementResponse{}, announcementerrors.ErrAnnouncementNotFound
		}
		return AnnouncementResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) List(ctx context.Context, q ListAnnouncementsQuery) ([]AnnouncementResponse, response.PaginationMeta, error) {
	page, limit := normalizePagination(q.Page, q.Limit)

	announcements, total, err := s.repo.FindFiltered(ctx, ListFilter{
		Category:   q.Category,
		Department: q.Department,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	resp := make([]AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		resp[i] = mapToResponse(a)
	}
	return resp, response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAnnouncementRequest, actorID, actorRole string) (AnnouncementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AnnouncementResponse{}, announcementerrors.ErrInvalidAnnouncementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update announcement begin tx failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnouncementResponse{}, announcementerrors.ErrAnnouncementNotFound
		}
		return AnnouncementResponse{}, err
	}

	// Only the creator or an admin may modify an announcement.
	if actorRole != authz.RoleAdmin && a.CreatedByID.String() != actorID {
		return AnnouncementResponse{}, announcementerrors.ErrNotAnnouncementOwner
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.Department != nil {
		a.Department = req.Department
	}

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update announcement persist failed", zap.String("announcement_id", id), zap.Error(err))
		return AnnouncementResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update announcement commit failed", zap.String("announcement_id", id), zap.Error(err))
		return AnnouncementResponse{}, err
	}
	s.logger.Info("update announcement success", zap.String("announcement_id", id))

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string, actorID, actorRole string) error {
	if _, err := uuid.Parse(id); err != nil {
		return announcementerrors.ErrInvalidAnnouncementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return announcementerrors.ErrAnnouncementNotFound
		}
		return err
	}

	if actorRole != authz.RoleAdmin && a.CreatedByID.String() != actorID {
		return announcementerrors.ErrNotAnnouncementOwner
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete announcement success", zap.String("announcement_id", id))
	return nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func mapToResponse(a Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Department:  a.Department,
		CreatedByID: a.CreatedByID.String(),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CreatedBy != nil {
		resp.CreatedBy = &AuthorResponse{
			ID:    a.CreatedBy.ID.String(),
			Name:  a.CreatedBy.Name,
			Email: a.CreatedBy.Email,
		}
	}
	return resp
}
