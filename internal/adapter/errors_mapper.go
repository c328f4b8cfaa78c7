package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-fit-keeper/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// kindForStatus classifies an HTTP status into the failure category used by
// the retry executor. 5xx and 429 responses are transient; 4xx responses are
// permanent and must not be retried.
func kindForStatus(status int) models.ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.KindPermission
	case status == http.StatusConflict:
		return models.KindConflict
	case status == http.StatusTooManyRequests || status == http.StatusInsufficientStorage:
		return models.KindQuota
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return models.KindValidation
	case status >= http.StatusInternalServerError:
		return models.KindNetwork
	case status >= http.StatusBadRequest:
		return models.KindValidation
	}
	return models.KindUnknown
}

// remoteError turns a finished response into a classified sync error, or nil
// for a 2xx status. Transport failures (err != nil before any response) are
// classified as network errors by the caller.
func remoteError(op string, category models.DataCategory, resp *resty.Response) error {
	mapped := mapHTTPError(resp)
	if mapped == nil {
		return nil
	}

	return models.NewSyncError(kindForStatus(resp.StatusCode()), op, category, mapped)
}
