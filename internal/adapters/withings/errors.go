package withings

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated     = errors.New("withings client not authenticated")
	ErrConnection           = errors.New("withings connection error")
	ErrUnexpectedResponse   = errors.New("unexpected response from withings")
	ErrAuthenticationFailed = errors.New("withings authentication failed")
	ErrInvalidParams        = errors.New("withings invalid params")
	ErrUnauthorized         = errors.New("withings unauthorized")
	ErrErrorOccurred        = errors.New("withings error occurred")
	ErrBadState             = errors.New("withings bad state")
	ErrTooManyRequests      = errors.New("withings too many requests")
	ErrUnknownStatus        = errors.New("withings unknown status")
)

// StatusError lleva el status de la envoltura JSON y el sentinel clasificado.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status=%d", e.kind, e.Status)
	}
	return fmt.Sprintf("%v: status=%d error=%s", e.kind, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

// ResponseError se devuelve cuando la respuesta no es JSON.
type ResponseError struct {
	ContentType string
	Body        string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%v: content-type=%q response=%s", ErrUnexpectedResponse, e.ContentType, e.Body)
}

func (e *ResponseError) Unwrap() error { return ErrUnexpectedResponse }
