package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerVerifier validates Authorization headers against a configured
// shared secret.
type BearerVerifier struct {
	// secretDigest is the SHA-256 of the configured secret. Comparing
	// digests keeps the comparison constant-time without leaking the
	// secret's length.
	secretDigest [sha256.Size]byte
	configured   bool
}

// NewBearerVerifier creates a verifier for the given shared secret.
// An empty secret produces a verifier that rejects every request: the
// control plane fails closed when unconfigured.
func NewBearerVerifier(secret string) *BearerVerifier {
	v := &BearerVerifier{}
	if secret != "" {
		v.secretDigest = sha256.Sum256([]byte(secret))
		v.configured = true
	}
	return v
}

// Configured reports whether a secret has been set.
func (v *BearerVerifier) Configured() bool {
	return v.configured
}

// Verify checks the request's Authorization header for a bearer token
// matching the configured secret. The comparison is constant-time.
func (v *BearerVerifier) Verify(r *http.Request) bool {
	if !v.configured {
		return false
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return false
	}

	digest := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(digest[:], v.secretDigest[:]) == 1
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme keyword is matched case-insensitively per
// RFC 7235.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
