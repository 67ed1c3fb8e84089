package policy

import "errors"

// noEndpointsError signals an empty endpoint table (topology/config error).
type noEndpointsError struct{ policy string }

func (e noEndpointsError) Error() string { return e.policy + ": no endpoints available" }

// IsNoEndpointsAvailable reports whether err indicates an empty endpoint table.
func IsNoEndpointsAvailable(err error) bool {
	var e noEndpointsError
	return errors.As(err, &e)
}

// noEligiblePeerError signals that every candidate was filtered out
// (visited, busy, or self). Callers may retry later or run locally.
type noEligiblePeerError struct{ policy string }

func (e noEligiblePeerError) Error() string { return e.policy + ": no eligible peer" }

// IsNoEligiblePeer reports whether err indicates that no candidate survived filtering.
func IsNoEligiblePeer(err error) bool {
	var e noEligiblePeerError
	return errors.As(err, &e)
}

// catalogEmptyError signals that no models were loaded for local execution.
type catalogEmptyError struct{ policy string }

func (e catalogEmptyError) Error() string { return e.policy + ": model catalog is empty" }

// IsModelCatalogEmpty reports whether err indicates an empty model catalog.
func IsModelCatalogEmpty(err error) bool {
	var e catalogEmptyError
	return errors.As(err, &e)
}

var (
	errNilRequest = errors.New("nil request")
	errNoExecutor = errors.New("no inference executor configured")
)
