package announcementerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrAnnouncementNotFound = apperror.New(
		apperror.CodeNotFound,
		"announcement not found",
		http.StatusNotFound,
	)
	ErrNotAnnouncementOwner = apperror.New(
		apperror.CodeForbidden,
		"only the creator or an admin may modify this announcement",
		http.StatusForbidden,
	)
	ErrInvalidCreatorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid creator id",
		http.StatusBadRequest,
	)
	ErrInvalidAnnouncementID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid announcement id",
		http.StatusBadRequest,
	)
)
