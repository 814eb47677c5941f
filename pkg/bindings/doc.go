// Package bindings persists the tenant → environment mapping that drives
// routing decisions.
//
// A binding is a single overwrite-only key-value pair: tenant identifier to
// environment tag ("dev" or "stable"). Absence of a binding is a valid,
// meaningful state ("unbound") and is reported distinctly from storage
// errors. Bindings have no TTL; they live until explicitly deleted.
//
// Three backends implement the Store interface:
//
//   - MemoryStore: process-local map, for tests and single-instance dev use
//   - SQLiteStore: durable single-node storage with WAL journaling
//   - RedisStore: shared storage for multi-replica deployments, matching
//     the eventually consistent external KV the router was designed around
//
// All backends are last-write-wins with no locking across replicas;
// concurrent writes for the same tenant are acceptable because the mapping
// is idempotent.
package bindings
