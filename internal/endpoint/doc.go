// Package endpoint holds the live, concurrently shared view of the nodes a
// proxy can route to: the local node and its fog neighbours.
//
//   - endpoint.go: Endpoint with its atomic pending counter and latency history.
//   - history.go: fixed-capacity outcome ring (last K completed calls).
//   - table.go: Table, the id -> Endpoint map shared by every request.
//
// Pending counters are plain atomics and may be stale by the time a caller acts
// on them. History appends take a per-endpoint mutex scoped to the append.
package endpoint
