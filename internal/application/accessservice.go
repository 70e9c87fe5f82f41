package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agentauth/agentauth/internal/domain/model"
	"github.com/agentauth/agentauth/internal/domain/port/driven"
)

// AccessService is the disclosure gate: the single entry point through which
// credentials leave the vault. It composes the scope check, the vault
// unlock, the session fetch, and the audit trail. Every external credential
// read funnels through GetSession; nothing else produces an audit entry.
type AccessService struct {
	vault    *Vault
	sessions *SessionService
	audit    driven.AuditStore
	log      *slog.Logger
	now      func() time.Time
}

// NewAccessService creates an AccessService. The logger is used only for
// audit-write failures; the service itself never prints to the user.
func NewAccessService(vault *Vault, sessions *SessionService, audit driven.AuditStore, log *slog.Logger) *AccessService {
	return &AccessService{
		vault:    vault,
		sessions: sessions,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// GetSession releases the decrypted cookie mapping for domain to the given
// agent, unlocking the vault with password.
//
// The scope check runs first and short-circuits before any unlock attempt or
// key derivation: a misconfigured agent never triggers vault work. An
// uninitialized vault is a precondition failure and propagates without an
// audit outcome; every other path records exactly one access-log entry,
// after the outcome is determined. Audit durability is best-effort relative
// to the disclosure itself: a failed log write is reported to the logger but
// never overturns the primary result.
func (s *AccessService) GetSession(ctx context.Context, agent *model.AgentIdentity, domain, password string) (model.Cookies, error) {
	d := model.NormalizeDomain(domain)

	if !agent.Allows(d) {
		s.record(ctx, agent, d, model.OutcomeDeniedScope)
		return nil, fmt.Errorf("%w: agent %q has no scope for %q", model.ErrScopeDenied, agent.Name, d)
	}

	handle, err := s.vault.Unlock(ctx, password)
	if err != nil {
		if errors.Is(err, model.ErrVaultAuthentication) {
			s.record(ctx, agent, d, model.OutcomeDeniedAuth)
		}
		return nil, err
	}
	defer handle.Zero()

	cookies, err := s.sessions.Fetch(ctx, handle, d)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
			s.record(ctx, agent, d, model.OutcomeDeniedNotFound)
		case errors.Is(err, model.ErrSessionExpired):
			s.record(ctx, agent, d, model.OutcomeDeniedExpired)
		}
		return nil, err
	}

	s.record(ctx, agent, d, model.OutcomeGranted)
	return cookies, nil
}

// RecentLog returns up to limit audit entries, newest first.
func (s *AccessService) RecentLog(ctx context.Context, limit int) ([]model.AccessLogEntry, error) {
	return s.audit.Recent(ctx, limit)
}

func (s *AccessService) record(ctx context.Context, agent *model.AgentIdentity, domain string, outcome model.Outcome) {
	entry := &model.AccessLogEntry{
		AgentID:   agent.ID,
		AgentName: agent.Name,
		Domain:    domain,
		Outcome:   outcome,
		Timestamp: s.now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Error("audit log write failed",
			"agent", agent.Name,
			"domain", domain,
			"outcome", string(outcome),
			"error", err,
		)
	}
}
