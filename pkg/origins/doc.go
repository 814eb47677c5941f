// Package origins tracks reachability of the dev and stable deployments.
//
// A cron-scheduled sweep checks both origins and records the result for
// the /ready endpoint and the origin_up metric. Sweeps are purely
// observational: routing never consults them, a tenant bound to an
// unreachable origin still gets forwarded there (and receives the
// forwarder's 502).
package origins
