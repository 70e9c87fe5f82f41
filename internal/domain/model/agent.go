package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WildcardPrefix marks a scope entry as a subdomain-delegation pattern:
// "*.example.com" permits any domain ending in ".example.com". The marker is
// a single named constant so the matching policy has one point of change.
const WildcardPrefix = "*."

// AgentIdentity is a named principal permitted to request sessions for a
// fixed set of domain scopes. ID and Name are immutable after creation.
type AgentIdentity struct {
	ID        uuid.UUID
	Name      string
	Scopes    []string
	CreatedAt time.Time
}

// Allows reports whether the agent's scopes permit the given domain.
func (a *AgentIdentity) Allows(domain string) bool {
	return ScopeAllows(a.Scopes, domain)
}

// ScopeAllows is the single scope-matching decision point for the whole
// system; credential disclosure must never re-implement this rule.
//
// A domain is permitted when it exactly equals a scope entry, or when the
// entry starts with WildcardPrefix and the domain ends with the remainder
// including the leading dot. Exact scopes do not cover subdomains, and a
// wildcard scope does not cover the bare apex ("*.example.com" permits
// "mail.example.com" but not "example.com").
func ScopeAllows(scopes []string, domain string) bool {
	d := NormalizeDomain(domain)
	if d == "" {
		return false
	}
	for _, scope := range scopes {
		s := NormalizeDomain(scope)
		if strings.HasPrefix(s, WildcardPrefix) {
			suffix := s[len(WildcardPrefix)-1:] // keep the dot: ".example.com"
			if len(suffix) > 1 && strings.HasSuffix(d, suffix) && len(d) > len(suffix) {
				return true
			}
			continue
		}
		if d == s {
			return true
		}
	}
	return false
}
