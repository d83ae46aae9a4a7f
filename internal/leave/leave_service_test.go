package leave

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"
)

type fakeRepo struct {
	withTxFn                 func(tx *sql.Tx) Repository
	createFn                 func(ctx context.Context, l *Leave) error
	findByIDFn               func(ctx context.Context, id string) (*Leave, error)
	findFilteredFn           func(ctx context.Context, f ListFilter) ([]Leave, int64, error)
	findByEmployeeFn         func(ctx context.Context, employeeID string, f EmployeeFilter) ([]Leave, int64, error)
	findApprovedByEmployeeFn func(ctx context.Context, employeeID string) ([]Leave, error)
	updateFn                 func(ctx context.Context, l *Leave) error
	deleteFn                 func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindFiltered(ctx context.Context, fl ListFilter) ([]Leave, int64, error) {
	return f.findFilteredFn(ctx, fl)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string, fl EmployeeFilter) ([]Leave, int64, error) {
	return f.findByEmployeeFn(ctx, employeeID, fl)
}
func (f *fakeRepo) FindApprovedByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	return f.findApprovedByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) Update(ctx context.Context, l *Leave) error { return f.updateFn(ctx, l) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func newFakeRepo() *fakeRepo {
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	return repo
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved Leave
	repo := newFakeRepo()
	repo.createFn = func(ctx context.Context, l *Leave) error { saved = *l; return nil }
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return &saved, nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(ctx, employeeID, CreateLeaveRequest{
		LeaveType: "SICK_LEAVE",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-12",
		Reason:    strPtr("flu"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 3, resp.Duration)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.Equal(t, "flu", resp.Reason)
	assert.NotEmpty(t, resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("invalid employee id", func(t *testing.T) {
		_, err := svc.Create(ctx, "not-a-uuid", CreateLeaveRequest{
			LeaveType: "ANNUAL_LEAVE", StartDate: "2024-01-10", EndDate: "2024-01-12",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})

	t.Run("invalid date format", func(t *testing.T) {
		_, err := svc.Create(ctx, employeeID, CreateLeaveRequest{
			LeaveType: "ANNUAL_LEAVE", StartDate: "10/01/2024", EndDate: "2024-01-12",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.Create(ctx, employeeID, CreateLeaveRequest{
			LeaveType: "ANNUAL_LEAVE", StartDate: "2024-01-12", EndDate: "2024-01-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestService_MalformedID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("get", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "abc")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})

	t.Run("update", func(t *testing.T) {
		_, err := svc.Update(ctx, "abc", UpdateLeaveRequest{Reason: strPtr("typo")}, actorID, "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})

	t.Run("approve", func(t *testing.T) {
		_, err := svc.Approve(ctx, "abc", ApproveLeaveRequest{Status: StatusApproved}, "admin")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.Delete(ctx, "abc", actorID, "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})

	t.Run("list by employee filter", func(t *testing.T) {
		_, _, err := svc.List(ctx, ListLeavesQuery{EmployeeID: "abc"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})
}

func TestService_Approve(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	setup := func(status string) (*fakeRepo, *Leave) {
		l := &Leave{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL_LEAVE",
			StartDate:  date(2024, 1, 10),
			EndDate:    date(2024, 1, 12),
			Duration:   3,
			Status:     status,
		}
		repo := newFakeRepo()
		repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return l, nil }
		repo.updateFn = func(ctx context.Context, u *Leave) error { *l = *u; return nil }
		return repo, l
	}

	t.Run("admin approves pending", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Approve(ctx, l.ID.String(), ApproveLeaveRequest{
			Status:        StatusApproved,
			ApprovalNotes: strPtr("enjoy"),
		}, "admin")
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.Equal(t, "enjoy", resp.ApprovalNotes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		_, err := svc.Approve(ctx, l.ID.String(), ApproveLeaveRequest{Status: StatusApproved}, "employee")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Equal(t, StatusPending, l.Status)
	})

	t.Run("terminal status is frozen", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusApproved)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Approve(ctx, l.ID.String(), ApproveLeaveRequest{Status: StatusPending}, "admin")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-setting pending keeps it pending", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Approve(ctx, l.ID.String(), ApproveLeaveRequest{Status: StatusPending}, "admin")
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := newFakeRepo()
		repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Approve(ctx, uuid.New().String(), ApproveLeaveRequest{Status: StatusApproved}, "admin")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestIsAllowedStatusTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isAllowedStatusTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	setup := func(status string) (*fakeRepo, *Leave) {
		l := &Leave{
			ID:         uuid.New(),
			EmployeeID: ownerID,
			LeaveType:  "ANNUAL_LEAVE",
			StartDate:  date(2024, 1, 10),
			EndDate:    date(2024, 1, 12),
			Duration:   3,
			Status:     status,
		}
		repo := newFakeRepo()
		repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return l, nil }
		repo.updateFn = func(ctx context.Context, u *Leave) error { *l = *u; return nil }
		return repo, l
	}

	t.Run("owner reschedules a pending request", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Update(ctx, l.ID.String(), UpdateLeaveRequest{
			StartDate: strPtr("2024-02-01"),
			EndDate:   strPtr("2024-02-05"),
		}, ownerID.String(), "employee")
		assert.NoError(t, err)
		assert.Equal(t, 5, resp.Duration)
		assert.Equal(t, "2024-02-01", resp.StartDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner cannot edit", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(ctx, l.ID.String(), UpdateLeaveRequest{
			Reason: strPtr("changed"),
		}, uuid.New().String(), "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
	})

	t.Run("owner cannot edit after approval", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusApproved)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(ctx, l.ID.String(), UpdateLeaveRequest{
			Reason: strPtr("changed"),
		}, ownerID.String(), "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotEditable)
	})

	t.Run("admin can edit regardless of status", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusApproved)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Update(ctx, l.ID.String(), UpdateLeaveRequest{
			LeaveType: strPtr("CASUAL_LEAVE"),
		}, uuid.New().String(), "admin")
		assert.NoError(t, err)
		assert.Equal(t, "CASUAL_LEAVE", resp.LeaveType)
	})

	t.Run("invalid new range rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.Update(ctx, l.ID.String(), UpdateLeaveRequest{
			EndDate: strPtr("2024-01-01"),
		}, ownerID.String(), "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
		assert.Equal(t, 3, l.Duration)
	})
}

func TestService_Delete(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	setup := func(status string) (*fakeRepo, *Leave, *bool) {
		deleted := false
		l := &Leave{ID: uuid.New(), EmployeeID: ownerID, Status: status}
		repo := newFakeRepo()
		repo.findByIDFn = func(ctx context.Context, id string) (*Leave, error) { return l, nil }
		repo.deleteFn = func(ctx context.Context, id string) error { deleted = true; return nil }
		return repo, l, &deleted
	}

	t.Run("owner deletes pending", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l, deleted := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		err := svc.Delete(ctx, l.ID.String(), ownerID.String(), "employee")
		assert.NoError(t, err)
		assert.True(t, *deleted)
	})

	t.Run("owner cannot delete approved", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l, deleted := setup(StatusApproved)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		err := svc.Delete(ctx, l.ID.String(), ownerID.String(), "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotDeletable)
		assert.False(t, *deleted)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l, deleted := setup(StatusPending)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		err := svc.Delete(ctx, l.ID.String(), uuid.New().String(), "employee")
		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
		assert.False(t, *deleted)
	})

	t.Run("admin deletes anything", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo, l, deleted := setup(StatusRejected)
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()
		err := svc.Delete(ctx, l.ID.String(), uuid.New().String(), "admin")
		assert.NoError(t, err)
		assert.True(t, *deleted)
	})
}

func TestService_Stats(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := newFakeRepo()
	repo.findApprovedByEmployeeFn = func(ctx context.Context, id string) ([]Leave, error) {
		assert.Equal(t, employeeID, id)
		return []Leave{
			{LeaveType: "SICK_LEAVE", Duration: 3, Status: StatusApproved},
			{LeaveType: "SICK_LEAVE", Duration: 5, Status: StatusApproved},
			{LeaveType: "ANNUAL_LEAVE", Duration: 10, Status: StatusApproved},
		}, nil
	}

	svc := NewService(db, repo)
	stats, err := svc.Stats(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.Equal(t, 18, stats.TotalDays)
	assert.Equal(t, map[string]int{"SICK_LEAVE": 8, "ANNUAL_LEAVE": 10}, stats.ByType)
}

func TestService_Stats_Empty(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.findApprovedByEmployeeFn = func(ctx context.Context, id string) ([]Leave, error) {
		return nil, nil
	}

	svc := NewService(db, repo)
	stats, err := svc.Stats(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDays)
	assert.Empty(t, stats.ByType)
}

func TestService_List(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	t.Run("pagination is normalized before hitting the store", func(t *testing.T) {
		var got ListFilter
		repo := newFakeRepo()
		repo.findFilteredFn = func(ctx context.Context, f ListFilter) ([]Leave, int64, error) {
			got = f
			return nil, 25, nil
		}
		svc := NewService(db, repo)

		_, meta, err := svc.List(context.Background(), ListLeavesQuery{Page: 0, Limit: 500})
		assert.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 100, got.Limit)
		assert.Equal(t, int64(25), meta.Total)
		assert.Equal(t, 1, meta.TotalPages)
	})

	t.Run("defaults give ten per page", func(t *testing.T) {
		var got ListFilter
		repo := newFakeRepo()
		repo.findFilteredFn = func(ctx context.Context, f ListFilter) ([]Leave, int64, error) {
			got = f
			return nil, 25, nil
		}
		svc := NewService(db, repo)

		_, meta, err := svc.List(context.Background(), ListLeavesQuery{})
		assert.NoError(t, err)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("date filters must parse", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(db, repo)

		_, _, err := svc.List(context.Background(), ListLeavesQuery{StartDate: "Jan 10"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("filters are forwarded", func(t *testing.T) {
		var got ListFilter
		repo := newFakeRepo()
		repo.findFilteredFn = func(ctx context.Context, f ListFilter) ([]Leave, int64, error) {
			got = f
			return nil, 0, nil
		}
		svc := NewService(db, repo)

		_, _, err := svc.List(context.Background(), ListLeavesQuery{
			Status:    StatusPending,
			LeaveType: "SICK_LEAVE",
			StartDate: "2024-01-01",
			SortBy:    "duration",
			Order:     "asc",
		})
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, got.Status)
		assert.Equal(t, "SICK_LEAVE", got.LeaveType)
		assert.NotNil(t, got.StartFrom)
		assert.Equal(t, "duration", got.SortBy)
		assert.Equal(t, "asc", got.Order)
	})
}

func TestService_ListByEmployee(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := newFakeRepo()
	repo.findByEmployeeFn = func(ctx context.Context, id string, f EmployeeFilter) ([]Leave, int64, error) {
		assert.Equal(t, employeeID, id)
		assert.Equal(t, StatusPending, f.Status)
		return []Leave{{ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Status: StatusPending}}, 1, nil
	}

	svc := NewService(db, repo)
	items, meta, err := svc.ListByEmployee(context.Background(), employeeID, MyLeavesQuery{Status: StatusPending})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, response.PaginationMeta{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, meta)
}

func TestService_Create_RepoFailureRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.createFn = func(ctx context.Context, l *Leave) error { return errors.New("insert failed") }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateLeaveRequest{
		LeaveType: "ANNUAL_LEAVE", StartDate: "2024-01-10", EndDate: "2024-01-12",
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
