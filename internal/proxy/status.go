package proxy

import (
	"time"

	"fogproxy/pkg/types"
)

// ListModels returns a copy of the local catalog.
func (n *Node) ListModels() []types.Model {
	out := make([]types.Model, len(n.models))
	copy(out, n.models)
	return out
}

// Ready reports whether the node can serve: a non-empty catalog and the
// local endpoint present in the table.
func (n *Node) Ready() bool {
	if len(n.models) == 0 {
		return false
	}
	_, ok := n.table.Get(n.self)
	return ok
}

// Status builds a detailed status response for /status.
func (n *Node) Status() types.StatusResponse {
	now := time.Now()
	resp := types.StatusResponse{
		Policy:         n.policy.Name(),
		SelfID:         n.self.String(),
		Models:         len(n.models),
		UptimeSeconds:  int64(now.Sub(n.started).Seconds()),
		ServerTimeUnix: now.Unix(),
		LocalTotal:     n.localTotal.Load(),
		ForwardedTotal: n.forwardedTotal.Load(),
	}
	n.mu.Lock()
	resp.LastError = n.lastErr
	n.mu.Unlock()
	eps := n.table.Snapshot()
	resp.Endpoints = make([]types.EndpointStatus, 0, len(eps))
	for _, ep := range eps {
		recent := ep.Recent()
		st := types.EndpointStatus{
			ID:           ep.ID.String(),
			Name:         ep.Name,
			Addr:         ep.Addr,
			Self:         ep.ID == n.self,
			HWScore:      ep.HWScore,
			Pending:      ep.Pending(),
			AvgLatencyMs: ep.AvgLatencyMs(),
			Recent:       make([]types.OutcomeStatus, 0, len(recent)),
		}
		for _, o := range recent {
			oc := types.OutcomeStatus{Failed: o.Failed}
			if !o.Failed {
				oc.DurationMs = o.Millis()
			}
			st.Recent = append(st.Recent, oc)
		}
		resp.Endpoints = append(resp.Endpoints, st)
	}
	return resp
}
