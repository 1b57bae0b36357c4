package model

import (
	"errors"
	"fmt"
)

var (
	// Contract violations between this module and the pairing service schema
	ErrUnknownRecordVariant = errors.New("unknown record variant")
	ErrUnknownField         = errors.New("unknown field")
	ErrInvalidFieldValue    = errors.New("invalid field value")

	// Outcomes reported by the pairing service
	ErrPairingUnavailable = errors.New("pairing unavailable")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("not authorized")
	ErrRejected           = errors.New("request rejected")

	// The pairing service could not be reached or replied with garbage
	ErrTransportFailure = errors.New("transport failure")
)

var errUnbound = fmt.Errorf("%w: record is not bound to a connection", ErrTransportFailure)
