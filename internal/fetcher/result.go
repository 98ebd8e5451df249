package fetcher

import (
	"fmt"
)

// Kind tags a fetch result
type Kind int

const (
	KindSuccess          Kind = iota // 200/201, body read
	KindClientError                  // 400/401/404, body not read
	KindUnhandledStatus              // any other status, body not read
	KindTransportFailure             // connection or response parsing failure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindClientError:
		return "client_error"
	case KindUnhandledStatus:
		return "unhandled_status"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is produced exactly once per Fetch call. Body is only set for
// KindSuccess, Cause only for KindTransportFailure.
type Result struct {
	Kind   Kind
	Status int
	Body   string
	Cause  error
}

// Classify maps an HTTP status code to a result kind.
func Classify(status int) Kind {
	switch status {
	case 200, 201:
		return KindSuccess
	case 400, 401, 404:
		return KindClientError
	default:
		return KindUnhandledStatus
	}
}

// Err returns nil for a successful result and the typed error for every other kind.
func (r Result) Err() error {
	switch r.Kind {
	case KindSuccess:
		return nil
	case KindClientError:
		return &ClientError{Status: r.Status}
	case KindUnhandledStatus:
		return &UnhandledStatusError{Status: r.Status}
	default:
		return &TransportError{Cause: r.Cause}
	}
}

func success(status int, body string) Result {
	return Result{Kind: KindSuccess, Status: status, Body: body}
}

func transportFailure(cause error) Result {
	return Result{Kind: KindTransportFailure, Cause: cause}
}

// ClientError the remote service rejected the request
type ClientError struct {
	Status int
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("error occurred while requesting, response code: %d", e.Status)
}

// UnhandledStatusError status outside the known success and client error sets
type UnhandledStatusError struct {
	Status int
}

func (e *UnhandledStatusError) Error() string {
	return fmt.Sprintf("response code %d is not handled yet", e.Status)
}

// TransportError network, connection or response parsing failure
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
