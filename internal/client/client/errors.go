package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("rejected by server")
	ErrNotFound     = errors.New("document not found")
)

// IsTerminal reports whether retrying the same request cannot succeed.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrRejected)
}

// mapError classifies a gRPC error. The original error stays in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case codes.PermissionDenied, codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
