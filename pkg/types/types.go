package types

// OutcomeStatus is one entry of an endpoint's recent call history.
type OutcomeStatus struct {
	// Duration in milliseconds; zero when Failed is set.
	// example: 42
	DurationMs int64 `json:"duration_ms" example:"42"`
	// True for timeouts and failures.
	Failed bool `json:"failed,omitempty"`
}

// EndpointStatus summarizes one endpoint for /status.
type EndpointStatus struct {
	// Endpoint id.
	// example: 6f1c1c7e-8f0e-4a53-9d7b-0a3c8d9c1e11
	ID string `json:"id" example:"6f1c1c7e-8f0e-4a53-9d7b-0a3c8d9c1e11"`
	// Display name.
	// example: fog-1
	Name string `json:"name" example:"fog-1"`
	// Base URL of the peer proxy; empty for self.
	// example: http://10.0.0.2:8080
	Addr string `json:"addr,omitempty" example:"http://10.0.0.2:8080"`
	// True for the local node.
	Self bool `json:"self"`
	// Static hardware capability score.
	// example: 2
	HWScore float64 `json:"hw_score" example:"2"`
	// Requests dispatched and not yet completed.
	// example: 0
	Pending int64 `json:"pending" example:"0"`
	// Mean of recent outcomes in ms (failures count as a fixed penalty); 0 when unseen.
	// example: 35
	AvgLatencyMs int64 `json:"avg_latency_ms" example:"35"`
	// Recent outcomes, oldest first.
	Recent []OutcomeStatus `json:"recent"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Active routing policy.
	// example: detour
	Policy string `json:"policy" example:"detour"`
	// Id of the local endpoint.
	SelfID string `json:"self_id"`
	// Every known endpoint, self included, in table order.
	Endpoints []EndpointStatus `json:"endpoints"`
	// Number of catalog models.
	// example: 3
	Models int `json:"models" example:"3"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Requests executed locally since start.
	LocalTotal uint64 `json:"local_total"`
	// Requests forwarded to peers since start.
	ForwardedTotal uint64 `json:"forwarded_total"`
	// Last routing or execution error observed (if any).
	LastError string `json:"last_error,omitempty"`
}
