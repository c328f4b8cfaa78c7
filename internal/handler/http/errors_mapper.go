package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidToken:            http.StatusUnauthorized,
	service.ErrNoActiveSession:         http.StatusUnauthorized,
	service.ErrRecordRequired:          http.StatusBadRequest,
	service.ErrNoLocalData:             http.StatusBadRequest,
	service.ErrSyncInProgress:          http.StatusConflict,
	service.ErrMigrationAlreadyRunning: http.StatusConflict,
	service.ErrMigrationNotResumable:   http.StatusConflict,
	service.ErrMigrationNotFound:       http.StatusNotFound,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	store.ErrRecordNotFound:   http.StatusNotFound,
	store.ErrConflictNotFound: http.StatusNotFound,
	store.ErrStateNotFound:    http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}

	// remote-call failures map through their error kind
	switch models.KindOf(err) {
	case models.KindNetwork:
		return http.StatusBadGateway
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindPermission:
		return http.StatusForbidden
	case models.KindQuota:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
