package api

import (
	"errors"
	"fmt"
	"net/http"
)

// MalformedResponseMessage is the fixed, user-safe text of a
// MalformedResponseError.
const MalformedResponseMessage = "server returned an invalid response"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind tags the variant of a Failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindHTTP
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Failure is implemented by every error the request client produces for a
// network exchange.
type Failure interface {
	error
	Kind() Kind
}

// TransportError means no response was received: connection refused, DNS,
// timeout, cancelled context, or a broken body read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Kind() Kind { return KindTransport }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// HTTPError is a response with a status outside 2xx.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Kind() Kind { return KindHTTP }

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// MalformedResponseError is a success response whose body could not be
// decoded. The decoder diagnostic is kept for logs only and is not exposed
// through Error or Unwrap.
type MalformedResponseError struct {
	Status int
	cause  error
}

func (e *MalformedResponseError) Error() string { return MalformedResponseMessage }

func (e *MalformedResponseError) Kind() Kind { return KindMalformed }

// Normalize flattens a Failure into the message/status pair shown to users.
// status is set only for HTTP failures. ok is false if err is not a Failure.
func Normalize(err error) (message string, status int, ok bool) {
	var (
		te *TransportError
		he *HTTPError
		me *MalformedResponseError
	)
	switch {
	case errors.As(err, &he):
		return he.Message, he.Status, true
	case errors.As(err, &me):
		return me.Error(), 0, true
	case errors.As(err, &te):
		return te.Error(), 0, true
	}
	return "", 0, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	_, status, _ := Normalize(err)
	return status
}

func genericMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}
