package users

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind string

const (
	KindNetwork    Kind = "NETWORK"
	KindHTTPStatus Kind = "HTTP_STATUS"
	KindNoData     Kind = "NO_DATA"
)

// Sentinel errors for use with errors.Is().
var (
	ErrNetwork    = errors.New("network error")
	ErrHTTPStatus = errors.New("http status error")
	ErrNoData     = errors.New("no user data")
)

const noDataMessage = "No user data received from API"

// FetchError is returned by Client.FetchAll for every failure. Its Error
// string is meant to be shown to the user as-is.
type FetchError struct {
	Kind       Kind
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP Error: %d - %s", e.StatusCode, e.Status)
	case KindNoData:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", noDataMessage, e.Err)
		}
		return noDataMessage
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", ErrNetwork.Error(), e.Err)
		}
		return ErrNetwork.Error()
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrNoData:
		return e.Kind == KindNoData
	}
	return false
}

func networkError(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Err: err}
}

func statusError(code int, status string) *FetchError {
	return &FetchError{Kind: KindHTTPStatus, StatusCode: code, Status: status}
}

func noDataError(err error) *FetchError {
	return &FetchError{Kind: KindNoData, Err: err}
}
