package proxy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fogproxy/internal/backend"
)

// unknownTargetError signals that the policy chose an id missing from the
// endpoint table, e.g. after a concurrent removal.
type unknownTargetError struct{ id uuid.UUID }

func (e unknownTargetError) Error() string { return "route target not in endpoint table: " + e.id.String() }

func isUnknownTarget(err error) bool {
	var e unknownTargetError
	return errors.As(err, &e)
}

func isStatus(err error) bool { return backend.IsStatusError(err) }

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

var errNilRequest = errors.New("nil request")
