package resp

import (
	"net/http"

	"github.com/projectflow/projectflow/pkg/ecode"
)

// UnAuthorized indicates that the request carries no valid credential.
func UnAuthorized(message string, data ...any) *Exception {
	return newException(http.StatusUnauthorized, ecode.Unauthorized, message, data...)
}

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newException(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// AlreadyExists indicates a uniqueness conflict. The existing surface
// reports conflicts as 400.
func AlreadyExists(message string, data ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.Conflict, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}
