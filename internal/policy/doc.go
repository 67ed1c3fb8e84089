// Package policy decides, per inference request, whether a node executes the
// request itself or forwards it to a fog neighbour, and which catalog model
// runs when it executes locally. It is structured into small files by concern:
//
//   - policy.go: Policy interface, Kind, New and Deps.
//   - request.go: Request, the per-hop envelope a decision reads.
//   - errors.go: error types and helpers (IsNoEndpointsAvailable, IsNoEligiblePeer, ...).
//   - catalog.go: Catalog selection helpers (cheapest, most accurate, by hint).
//   - estimator.go: Estimator and DefaultEstimator used by the detour policy.
//   - events.go: EventPublisher for decision diagnostics.
//   - sed.go, random.go, rrobin.go, mintime.go, detour.go: the five policies.
//
// Every policy answers with the local id once a request has been forwarded
// (Hops > 0), so a request is redirected at most once.
package policy
