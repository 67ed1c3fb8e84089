package policy

import "github.com/google/uuid"

// Request is the routing envelope for one inference request at one hop.
// Policies only read it; the forwarding transport builds the next hop's
// envelope with Next.
type Request struct {
	// Accuracy is the minimum accuracy the caller asks for.
	Accuracy float64
	// Priority is a deadline-like budget; the detour policy compares it with
	// the estimated local completion time in ms.
	Priority float64
	// ModelHint optionally names (a substring of) the model to run.
	ModelHint string
	// Hops counts how many times the request was forwarded already.
	Hops int
	// Visited lists the endpoints the request already traversed.
	Visited []uuid.UUID
	// Payload is the opaque inference input.
	Payload []byte
}

// HasVisited reports whether id is in the visited set.
func (r *Request) HasVisited(id uuid.UUID) bool {
	for _, v := range r.Visited {
		if v == id {
			return true
		}
	}
	return false
}

// Next returns the envelope sent to a peer: one more hop, with from appended
// to the visited set. The payload is shared.
func (r *Request) Next(from uuid.UUID) *Request {
	next := *r
	next.Hops = r.Hops + 1
	next.Visited = make([]uuid.UUID, 0, len(r.Visited)+1)
	next.Visited = append(next.Visited, r.Visited...)
	if !r.HasVisited(from) {
		next.Visited = append(next.Visited, from)
	}
	return &next
}
