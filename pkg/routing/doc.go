// Package routing decides which environment serves each tenant request.
//
// Resolution order for a tenant-matched request:
//
//  1. An explicit binding from the store always wins.
//  2. With auto-detection enabled, an unbound tenant is probed on both
//     origins; a conclusive result is persisted (write-through) and used.
//  3. Otherwise the configured default environment applies.
//
// A decision is computed fresh for every request and never cached in
// process memory; the binding store is the single source of truth shared
// across router replicas. A store read failure yields an error rather than
// a guessed decision.
package routing
