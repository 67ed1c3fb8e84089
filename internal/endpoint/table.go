package endpoint

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Table maps endpoint ids to endpoints. It is shared by every in-flight
// routing decision; membership changes are rare (peer discovery) and guarded
// by a RWMutex held only long enough to copy the member list.
//
// Snapshot order is insertion order, stable while membership is unchanged.
type Table struct {
	mu    sync.RWMutex
	order []*Endpoint
	byID  map[uuid.UUID]*Endpoint
}

// NewTable builds a table from eps. Later duplicates of an id are ignored.
func NewTable(eps ...*Endpoint) *Table {
	t := &Table{byID: make(map[uuid.UUID]*Endpoint, len(eps))}
	for _, ep := range eps {
		_ = t.Add(ep)
	}
	return t
}

// Add inserts ep. Returns an error if the id is already present.
func (t *Table) Add(ep *Endpoint) error {
	if ep == nil {
		return fmt.Errorf("nil endpoint")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.byID == nil {
		t.byID = make(map[uuid.UUID]*Endpoint)
	}
	if _, ok := t.byID[ep.ID]; ok {
		return fmt.Errorf("duplicate endpoint id %s", ep.ID)
	}
	t.byID[ep.ID] = ep
	t.order = append(t.order, ep)
	return nil
}

// Remove deletes the endpoint with id and reports whether it was present.
func (t *Table) Remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return false
	}
	delete(t.byID, id)
	next := make([]*Endpoint, 0, len(t.order)-1)
	for _, ep := range t.order {
		if ep.ID != id {
			next = append(next, ep)
		}
	}
	t.order = next
	return true
}

// Get looks up an endpoint by id.
func (t *Table) Get(id uuid.UUID) (*Endpoint, bool) {
	if t == nil {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	ep, ok := t.byID[id]
	return ep, ok
}

// Len returns the number of endpoints. A nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// Snapshot returns the current members in table order. The slice is a copy;
// the endpoints are shared.
func (t *Table) Snapshot() []*Endpoint {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Endpoint, len(t.order))
	copy(out, t.order)
	return out
}
