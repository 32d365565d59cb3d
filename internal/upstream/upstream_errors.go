package upstream

import (
	"errors"
	"fmt"
	"net/http"

	"go-storefront/internal/pkg/apperror"
)

var (
	ErrUnavailable = apperror.New(
		apperror.CodeUpstreamError,
		"Store service is unavailable",
		http.StatusBadGateway,
	)

	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Session is missing or expired, please login again",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Access forbidden",
		http.StatusForbidden,
	)

	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInvalidResponse = apperror.New(
		apperror.CodeUpstreamError,
		"Store service returned an unexpected response",
		http.StatusBadGateway,
	)
)

// StatusError is a non-2xx answer from the store API.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// Translate maps a client error to an AppError the handlers can render.
// notFound replaces the generic ErrNotFound when the caller has a more
// specific one; pass nil to keep the generic error.
func Translate(err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var se *StatusError
	if !errors.As(err, &se) {
		return apperror.Wrap(err, ErrUnavailable.Code, ErrUnavailable.Message, ErrUnavailable.HTTPStatus)
	}

	switch {
	case se.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case se.Status == http.StatusForbidden:
		return ErrForbidden
	case se.Status == http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return ErrNotFound
	case se.Status == http.StatusBadRequest,
		se.Status == http.StatusConflict,
		se.Status == http.StatusUnprocessableEntity:
		msg := se.Message
		if msg == "" {
			msg = "Request rejected by store service"
		}
		return apperror.Wrap(se, apperror.CodeInvalidInput, msg, http.StatusBadRequest)
	default:
		return apperror.Wrap(se, ErrUnavailable.Code, ErrUnavailable.Message, ErrUnavailable.HTTPStatus)
	}
}
