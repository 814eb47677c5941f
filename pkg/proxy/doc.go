// Package proxy forwards tenant traffic to the resolved origin.
//
// The forwarder changes only the network destination of a request: the
// outbound connection goes to the resolved origin host while the Host
// header the origin sees stays the one the client sent, so cookies,
// absolute links and host-based application logic keep working. Methods,
// headers and bodies (streaming included) pass through unmodified.
//
// Responses are annotated with three diagnostic headers (environment,
// origin host, tenant id) for operational tracing. They are informational
// only and must never be treated as authoritative downstream.
package proxy
