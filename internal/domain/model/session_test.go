package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LinkedIn.com", "linkedin.com"},
		{"  example.com  ", "example.com"},
		{"example.com.", "example.com"},
		{"MAIL.Example.COM", "mail.example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDomain(tt.in), "input %q", tt.in)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	live := &Session{ExpiresAt: now.Add(time.Second)}
	assert.False(t, live.Expired(now))

	boundary := &Session{ExpiresAt: now}
	assert.True(t, boundary.Expired(now), "expiry equal to now counts as expired")

	dead := &Session{ExpiresAt: now.Add(-time.Second)}
	assert.True(t, dead.Expired(now))
}
