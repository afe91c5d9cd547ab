package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/storage"
)

var (
	ErrMissingBillID     = errors.New("bill_id required")
	ErrMissingID         = errors.New("id required")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrEmptyName         = errors.New("name must not be empty")
	ErrInvalidPrice      = errors.New("price must be a finite, non-negative number")
	ErrMissingPayer      = errors.New("payer_id required")
	ErrEmptyParticipants = errors.New("participants must list at least one person; omit participants to split across everyone")
)

// toConnectError maps storage errors onto Connect codes.
// Unexpected errors are logged and reported as CodeInternal.
func toConnectError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrUnknownPayer), errors.Is(err, storage.ErrUnknownParticipant):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
