// Package detect resolves which environment serves an unbound tenant by
// probing both origins concurrently.
//
// Each origin exposes GET /api/tenant/{tenantId}, returning a 2xx status
// only when it recognizes the tenant. The detector issues both probes in
// parallel, waits for both to finish, and declares a winner only when
// exactly one side answers with success. Both-succeed and both-fail are
// deliberately treated as inconclusive: the router never guesses between
// two plausible candidates, it falls back to the configured default.
package detect
