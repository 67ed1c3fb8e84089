// Package proxy is the serving core of a fog node. It ties the routing
// policy, the endpoint table and the transports together:
//
//   - node.go: Node, the per-request flow (choose, dispatch, account, record).
//   - config.go: Config and defaults; NewNode applies them.
//   - forwarder.go: HTTPForwarder, which hands a request to a peer proxy.
//   - headers.go: the X-Fog-* header contract shared by forwarder and server.
//   - status.go: Status/ListModels/Ready reporting.
//   - metrics.go: Prometheus routing metrics.
package proxy
