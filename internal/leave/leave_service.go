package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"leavedesk/internal/authz"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, response.PaginationMeta, error)
	ListByEmployee(ctx context.Context, employeeID string, q MyLeavesQuery) ([]LeaveResponse, response.PaginationMeta, error)
	Stats(ctx context.Context, employeeID string) (LeaveStatsResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest, actorID, actorRole string) (LeaveResponse, error)
	Approve(ctx context.Context, id string, req ApproveLeaveRequest, actorRole string) (LeaveResponse, error)
	Delete(ctx context.Context, id string, actorID, actorRole string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	logger     *zap.Logger
	statsGroup singleflight.Group
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	duration, err := ComputeDuration(startDate, endDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   duration,
		Status:     StatusPending,
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("duration", duration),
	)

	// Re-read for the employee projection; fall back to the bare record if
	// the join fails.
	if created, err := s.repo.FindByID(ctx, l.ID.String()); err == nil {
		return mapToResponse(*created), nil
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, q ListLeavesQuery) ([]LeaveResponse, response.PaginationMeta, error) {
	page, limit := normalizePagination(q.Page, q.Limit)

	if q.EmployeeID != "" {
		if _, err := uuid.Parse(q.EmployeeID); err != nil {
			return nil, response.PaginationMeta{}, leaveerrors.ErrInvalidEmployeeID
		}
	}

	filter := ListFilter{
		Status:     q.Status,
		LeaveType:  q.LeaveType,
		EmployeeID: q.EmployeeID,
		SortBy:     q.SortBy,
		Order:      q.Order,
		Page:       page,
		Limit:      limit,
	}
	if q.StartDate != "" {
		d, err := parseDate(q.StartDate)
		if err != nil {
			return nil, response.PaginationMeta{}, err
		}
		filter.StartFrom = &d
	}
	if q.EndDate != "" {
		d, err := parseDate(q.EndDate)
		if err != nil {
			return nil, response.PaginationMeta{}, err
		}
		filter.EndUntil = &d
	}

	leaves, total, err := s.repo.FindFiltered(ctx, filter)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}
	return mapToListResponse(leaves), response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, q MyLeavesQuery) ([]LeaveResponse, response.PaginationMeta, error) {
	page, limit := normalizePagination(q.Page, q.Limit)

	leaves, total, err := s.repo.FindByEmployee(ctx, employeeID, EmployeeFilter{
		Status: q.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}
	return mapToListResponse(leaves), response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) Stats(ctx context.Context, employeeID string) (LeaveStatsResponse, error) {
	// Concurrent identical stats requests share one store round-trip.
	v, err, _ := s.statsGroup.Do(employeeID, func() (interface{}, error) {
		leaves, err := s.repo.FindApprovedByEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		stats := LeaveStatsResponse{ByType: map[string]int{}}
		for _, l := range leaves {
			stats.TotalDays += l.Duration
			stats.ByType[l.LeaveType] += l.Duration
		}
		return stats, nil
	})
	if err != nil {
		return LeaveStatsResponse{}, err
	}
	return v.(LeaveStatsResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest, actorID, actorRole string) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("actor_role", actorRole),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	// Owners may edit only while pending; admins may edit regardless.
	if actorRole != authz.RoleAdmin {
		if l.EmployeeID.String() != actorID {
			return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
		}
		if l.Status != StatusPending {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotEditable
		}
	}

	startDate := l.StartDate
	endDate := l.EndDate
	datesChanged := false
	if req.StartDate != nil {
		startDate, err = parseDate(*req.StartDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		datesChanged = true
	}
	if req.EndDate != nil {
		endDate, err = parseDate(*req.EndDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		datesChanged = true
	}
	if datesChanged {
		duration, err := ComputeDuration(startDate, endDate)
		if err != nil {
			return LeaveResponse{}, err
		}
		l.StartDate = startDate
		l.EndDate = endDate
		l.Duration = duration
	}
	if req.LeaveType != nil {
		l.LeaveType = *req.LeaveType
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success",
		zap.String("leave_id", id),
		zap.Int("duration", l.Duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, id string, req ApproveLeaveRequest, actorRole string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_role", actorRole),
		zap.String("target_status", req.Status),
	)

	if actorRole != authz.RoleAdmin {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if !isAllowedStatusTransition(l.Status, req.Status) {
		s.logger.Warn("approve leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", req.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = req.Status
	if req.ApprovalNotes != nil {
		l.ApprovalNotes = *req.ApprovalNotes
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string, actorID, actorRole string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if actorRole != authz.RoleAdmin {
		if l.EmployeeID.String() != actorID {
			return leaveerrors.ErrNotLeaveOwner
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotDeletable
		}
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

// PENDING may move to APPROVED, REJECTED or CANCELLED (or stay PENDING).
// The terminal statuses have no outgoing transitions; in particular PENDING
// is not reachable again once left.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return currentStatus == StatusPending
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCancelled
	default:
		return false
	}
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

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		Duration:      l.Duration,
		Reason:        l.Reason,
		Status:        l.Status,
		ApprovalNotes: l.ApprovalNotes,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.Employee = &EmployeeResponse{
			ID:    l.Employee.ID.String(),
			Name:  l.Employee.Name,
			Email: l.Employee.Email,
		}
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
