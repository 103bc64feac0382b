package describe

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
)

// ReadError reports that a source image could not be read in full.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// ErrorKind says why a description request failed. It is for logging
// only: every kind aborts the file the same way.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"   // Request exceeded the fixed timeout.
	KindStatus    ErrorKind = "status"    // Service answered with a non-2xx status.
	KindEmpty     ErrorKind = "empty"     // Response carried no usable text.
	KindCanceled  ErrorKind = "canceled"  // Caller's context was cancelled.
	KindTransport ErrorKind = "transport" // Anything else (DNS, TLS, decode).
)

// ErrEmptyResponse is wrapped by DescribeError when the response had no
// choices or only a refusal.
var ErrEmptyResponse = errors.New("response has no usable text")

// DescribeError reports a failed description request.
type DescribeError struct {
	Kind       ErrorKind
	StatusCode int // Set for KindStatus.
	Err        error
}

func (e *DescribeError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("describe: %s %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("describe: %s: %v", e.Kind, e.Err)
}

func (e *DescribeError) Unwrap() error { return e.Err }

// classify wraps a request error into a DescribeError, checked in order:
// deadline, cancellation, API status, everything else.
func classify(err error) *DescribeError {
	var apiErr *openai.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &DescribeError{Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &DescribeError{Kind: KindCanceled, Err: err}
	case errors.As(err, &apiErr):
		return &DescribeError{Kind: KindStatus, StatusCode: apiErr.StatusCode, Err: err}
	default:
		return &DescribeError{Kind: KindTransport, Err: err}
	}
}
