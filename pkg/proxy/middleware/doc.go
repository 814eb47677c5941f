// Package middleware provides the HTTP middleware chain for both listeners:
// request-ID assignment, structured request logging, and panic recovery.
package middleware
