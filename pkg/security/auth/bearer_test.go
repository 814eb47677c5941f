package auth

import (
	"net/http/httptest"
	"testing"
)

func TestBearerVerifier_Verify(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		want   bool
	}{
		{"matching token", "s3cret", "Bearer s3cret", true},
		{"scheme is case insensitive", "s3cret", "bearer s3cret", true},
		{"wrong token", "s3cret", "Bearer nope", false},
		{"missing header", "s3cret", "", false},
		{"token without scheme", "s3cret", "s3cret", false},
		{"wrong scheme", "s3cret", "Basic s3cret", false},
		{"empty token", "s3cret", "Bearer ", false},
		{"prefix of secret", "s3cret", "Bearer s3cre", false},
		{"secret plus suffix", "s3cret", "Bearer s3cretx", false},
		{"unconfigured secret rejects everything", "", "Bearer anything", false},
		{"unconfigured secret rejects empty too", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewBearerVerifier(tt.secret)
			r := httptest.NewRequest("GET", "/__binding/acme", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := v.Verify(r); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBearerVerifier_Configured(t *testing.T) {
	if NewBearerVerifier("").Configured() {
		t.Error("empty secret should report unconfigured")
	}
	if !NewBearerVerifier("x").Configured() {
		t.Error("non-empty secret should report configured")
	}
}
