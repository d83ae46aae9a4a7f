package leave

type CreateLeaveRequest struct {
	LeaveType string  `json:"leaveType" binding:"required,oneof=ANNUAL_LEAVE MATERNITY_LEAVE CASUAL_LEAVE SICK_LEAVE PERSONAL_LEAVE UNPAID_LEAVE"`
	StartDate string  `json:"startDate" binding:"required"`
	EndDate   string  `json:"endDate" binding:"required"`
	Reason    *string `json:"reason"`
}

// UpdateLeaveRequest is a partial patch; absent fields keep their stored
// values. Changing either date recomputes the duration.
type UpdateLeaveRequest struct {
	LeaveType *string `json:"leaveType" binding:"omitempty,oneof=ANNUAL_LEAVE MATERNITY_LEAVE CASUAL_LEAVE SICK_LEAVE PERSONAL_LEAVE UNPAID_LEAVE"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Reason    *string `json:"reason"`
}

type ApproveLeaveRequest struct {
	Status        string  `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED CANCELLED"`
	ApprovalNotes *string `json:"approvalNotes"`
}

type ListLeavesQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	LeaveType  string `form:"leaveType" binding:"omitempty,oneof=ANNUAL_LEAVE MATERNITY_LEAVE CASUAL_LEAVE SICK_LEAVE PERSONAL_LEAVE UNPAID_LEAVE"`
	EmployeeID string `form:"employeeId"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	SortBy     string `form:"sortBy"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type MyLeavesQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type EmployeeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LeaveResponse struct {
	ID            string            `json:"id"`
	EmployeeID    string            `json:"employeeId"`
	LeaveType     string            `json:"leaveType"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	Duration      int               `json:"duration"`
	Reason        string            `json:"reason,omitempty"`
	Status        string            `json:"status"`
	ApprovalNotes string            `json:"approvalNotes,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
	Employee      *EmployeeResponse `json:"employee,omitempty"`
}

type LeaveStatsResponse struct {
	TotalDays int            `json:"totalDays"`
	ByType    map[string]int `json:"byType"`
}
