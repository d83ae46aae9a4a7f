package announcement

type CreateAnnouncementRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"required,min=1,max=2000"`
	Category    string  `json:"category" binding:"required,oneof=holiday update urgent birthday policy"`
	Department  *string `json:"department"`
}

// UpdateAnnouncementRequest is a partial patch; absent fields keep their
// stored values.
type UpdateAnnouncementRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=2000"`
	Category    *string `json:"category" binding:"omitempty,oneof=holiday update urgent birthday policy"`
	Department  *string `json:"department"`
}

type ListAnnouncementsQuery struct {
	Category   string `form:"category" binding:"omitempty,oneof=holiday update urgent birthday policy"`
	Department string `form:"department"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type AuthorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AnnouncementResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Department  *string         `json:"department,omitempty"`
	CreatedByID string          `json:"createdById"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	CreatedBy   *AuthorResponse `json:"createdBy,omitempty"`
}
