package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrUnsafeRedirect: http.StatusBadRequest,
	ErrInvalidPostID:  http.StatusNotFound,
	ErrMalformedForm:  http.StatusBadRequest,

	service.ErrPostNotFound:            http.StatusNotFound,
	service.ErrUserNotFound:            http.StatusNotFound,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrEditConflict:            http.StatusConflict,
	service.ErrNotLoggedIn:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnsupportedPicture:      http.StatusBadRequest,
	service.ErrPictureTooLarge:         http.StatusRequestEntityTooLarge,
	validators.ErrInvalidForm:          http.StatusBadRequest,

	store.ErrNoUserWasFound:  http.StatusNotFound,
	store.ErrPostNotFound:    http.StatusNotFound,
	store.ErrVersionConflict: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
