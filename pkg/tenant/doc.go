// Package tenant maps inbound request hostnames to tenant identifiers.
//
// A tenant is a single DNS label directly under the configured base domain
// (e.g. "acme" for "acme.example.com" under base domain "example.com").
// Requests to the bare base domain belong to the reserved "default" tenant.
// Hostnames outside the base domain, and multi-level subdomains, are not
// tenant traffic and are passed through by the router untouched.
package tenant
