package boot

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAlreadyStarted = errors.New("runtime already started")
	ErrNoFactory      = errors.New("no runtime factory")
)

// FetchError reports a failed asset fetch. Status is zero for transport
// level failures.
type FetchError struct {
	Resource   string
	Status     int
	StatusText string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		text := e.StatusText
		if text == "" {
			text = http.StatusText(e.Status)
		}
		return fmt.Sprintf("failed to fetch %s: HTTP %d %s", e.Resource, e.Status, text)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s", e.Resource)
}

func (e *FetchError) Unwrap() error { return e.Err }

// statusCoder is implemented by fetcher errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

func asFetchError(resource string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		if fe.Resource == "" {
			fe.Resource = resource
		}
		return fe
	}
	fe = &FetchError{Resource: resource, Err: err}
	var sc statusCoder
	if errors.As(err, &sc) {
		fe.Status = sc.StatusCode()
		fe.Err = nil
	}
	return fe
}

// StartError reports a runtime that failed to construct or initialize.
type StartError struct {
	Err error
}

func (e *StartError) Error() string {
	return "runtime start: " + e.Err.Error()
}

func (e *StartError) Unwrap() error { return e.Err }
