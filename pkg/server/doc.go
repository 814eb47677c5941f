// Package server provides the HTTP listeners for the tenant edge router.
//
// This package ties together the routing components (tenant extraction,
// binding resolution, proxying, control-plane handlers, middleware) and
// manages server lifecycle including start, graceful shutdown, and OS
// signal handling.
//
// # Listeners
//
// The server runs up to two listeners:
//
//   - The data-plane listener receives tenant traffic. Requests under
//     /__binding/ go to the binding control plane; everything else is
//     resolved to an origin and proxied.
//   - The admin listener (optional, separate port) serves /health, /ready
//     and /metrics. It is separate so that ops paths can never shadow
//     application paths on tenant hostnames.
//
// # Basic Usage
//
// Creating and starting a server:
//
//	cfg, err := config.LoadConfigWithEnvOverrides(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv := server.NewServer(cfg, server.Deps{
//	    Store:     store,
//	    Resolver:  resolver,
//	    Forwarder: forwarder,
//	    Verifier:  verifier,
//	})
//	if err := srv.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The server shuts down automatically on SIGTERM or SIGINT, or when the
// context passed to Start is cancelled. The shutdown process:
//
//  1. Stops accepting new connections on both listeners
//  2. Waits for in-flight requests to complete (up to the shutdown timeout)
//  3. Forces connection closure if the timeout is exceeded
//
// # Middleware Chain
//
// Data-plane requests pass through the following middleware (outermost to
// innermost):
//
//  1. Recovery: recovers from panics and returns a 500 error
//  2. RequestID: generates a unique request ID for tracing
//  3. Logging: logs request/response details
//
// # Thread Safety
//
// All server operations are thread-safe and can be called concurrently from
// multiple goroutines.
package server
