package connection

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mcoot/pairings-web/internal/model"
	"github.com/mcoot/pairings-web/internal/wire"
)

// CallError reports a failed call to the pairing service. It unwraps to both
// its model error kind and the underlying cause.
type CallError struct {
	Method string
	Kind   error
	Cause  error
}

func (e *CallError) Error() string {
	msg := e.Cause.Error()
	if s, ok := status.FromError(e.Cause); ok {
		msg = s.Message()
	}
	return fmt.Sprintf("%s: %v: %s", wire.MethodName(e.Method), e.Kind, msg)
}

func (e *CallError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// kindOf maps the outcome of a call onto the model's error kinds.
func kindOf(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return model.ErrTransportFailure
	}
	s, ok := status.FromError(err)
	if !ok {
		return model.ErrTransportFailure
	}
	switch s.Code() {
	case codes.NotFound:
		return model.ErrNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		return model.ErrUnauthorized
	case codes.InvalidArgument:
		return model.ErrRejected
	case codes.OutOfRange, codes.FailedPrecondition:
		return model.ErrPairingUnavailable
	default:
		return model.ErrTransportFailure
	}
}

func callError(method string, err error) error {
	return &CallError{Method: method, Kind: kindOf(err), Cause: err}
}

// Reason returns the pairing service's explanation of a rejected call, if
// err carries one.
func Reason(err error) (string, bool) {
	var callErr *CallError
	if !errors.As(err, &callErr) {
		return "", false
	}
	s, ok := status.FromError(callErr.Cause)
	if !ok || s.Message() == "" {
		return "", false
	}
	return s.Message(), true
}
