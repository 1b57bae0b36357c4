package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/services/pairing"
	"github.com/mcoot/pairings-web/internal/services/tournament"
	"github.com/mcoot/pairings-web/internal/storage"
)

// codeOf maps a backend error onto the status code the client sees.
func codeOf(err error) codes.Code {
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, tournament.ErrIncomplete),
		errors.Is(err, tournament.ErrByeResult),
		errors.Is(err, identity.ErrMalformedIdentity):
		return codes.InvalidArgument
	case errors.Is(err, tournament.ErrMissingProof):
		return codes.Unauthenticated
	case errors.Is(err, tournament.ErrWrongProof):
		return codes.PermissionDenied
	case errors.Is(err, storage.ErrTournamentNotFound),
		errors.Is(err, storage.ErrPlayerNotFound),
		errors.Is(err, storage.ErrGameNotFound):
		return codes.NotFound
	case errors.Is(err, tournament.ErrNoMoreRounds):
		return codes.OutOfRange
	case errors.Is(err, pairing.ErrNotEnoughPlayers):
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// toStatus converts err into a status error, leaving status errors alone.
func toStatus(method string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := codeOf(err)
	if code == codes.Internal {
		return status.Errorf(codes.Internal, "%s: %v", method, err)
	}
	return status.Error(code, err.Error())
}
