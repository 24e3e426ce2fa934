package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// ErrorKind is the closed set of fetch failure classes. Every failure a
// fetch can produce maps to exactly one kind.
type ErrorKind int

const (
	// KindHTTPStatus is a completed response with a non-2xx status.
	KindHTTPStatus ErrorKind = iota
	// KindTimeout is a request that exceeded the fetch timeout.
	KindTimeout
	// KindTransport is any other connection/request failure.
	KindTransport
	// KindUnclassified is a failure outside the transport taxonomy,
	// tagged with the underlying error's type.
	KindUnclassified
)

// Error is a classified fetch failure. Code and Message produce the
// structured tag and human-readable text recorded in the row ledger, so the
// mapping from failure to ledger entry lives in one place.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *Error) Error() string {
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the structured status tag for the ledger.
func (e *Error) Code() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("error:http:%d", e.StatusCode)
	case KindTimeout:
		return "error:timeout"
	case KindTransport:
		return "error:request"
	default:
		return "error:" + errTypeName(e.Err)
	}
}

// Message returns the human-readable error text for the ledger.
func (e *Error) Message() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	case KindTimeout:
		return fmt.Sprintf("Timeout for %s", e.URL)
	case KindTransport:
		return fmt.Sprintf("Request error: %v for %s", e.Err, e.URL)
	default:
		return fmt.Sprintf("%s: %v", errTypeName(e.Err), e.Err)
	}
}

// errTypeName names an error's dynamic type without the pointer marker.
func errTypeName(err error) string {
	if err == nil {
		return "unknown"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// Classify wraps an arbitrary fetch failure into a classified *Error.
// Already-classified errors pass through unchanged.
func Classify(rawURL string, err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	if isTimeout(err) {
		return &Error{Kind: KindTimeout, URL: rawURL, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: KindTransport, URL: rawURL, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindTransport, URL: rawURL, Err: err}
	}

	return &Error{Kind: KindUnclassified, URL: rawURL, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
