package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport-level shape of an error, safe to hand to the
// response writer. Details is only populated for validation-class errors.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to an HTTPError. Errors that are not AppErrors are
// treated as unexpected and surface as a sanitized 500; the caller is
// responsible for logging the original.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
