package tenant

import (
	"net"
	"strings"
)

// DefaultTenant is the reserved identifier for requests that hit the bare
// base domain rather than a tenant subdomain.
const DefaultTenant = "default"

// Extract derives the tenant identifier from a request hostname.
//
// The hostname may carry a port; it is stripped before comparison. Matching
// is case-insensitive and the returned identifier is always lowercase.
//
// Rules:
//   - hostname equal to baseDomain returns DefaultTenant
//   - a single-label subdomain of baseDomain returns that label
//   - multi-level subdomains and unrelated hostnames return ok=false,
//     meaning the request is not tenant traffic
//
// Extract is a pure function; callers decide what to do with non-tenant
// hosts (the router passes them through unmodified).
func Extract(hostname, baseDomain string) (string, bool) {
	host := normalizeHost(hostname)
	base := normalizeHost(baseDomain)

	if host == "" || base == "" {
		return "", false
	}

	if host == base {
		return DefaultTenant, true
	}

	suffix := "." + base
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}

	label := strings.TrimSuffix(host, suffix)
	if label == "" || strings.Contains(label, ".") {
		// Only single-level subdomains identify tenants.
		return "", false
	}

	return label, true
}

// normalizeHost lowercases a hostname and strips any port suffix.
func normalizeHost(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
