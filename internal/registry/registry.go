// Package registry holds the serialized in-memory complaint state machine.
// One mutex guards the whole state: every mutating operation runs to
// completion with exclusive access, so a complaint is never visible with
// its history or stats half-updated. Reads take the read lock and return
// deep copies.
package registry

import (
	"sync"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/domain/oracle"
)

// Config carries the mutable singleton state the registry starts with.
type Config struct {
	Administrator complaint.Principal
	Treasury      complaint.Principal
	EscalationFee int64
}

type state struct {
	complaints    map[int64]complaint.Complaint
	history       map[int64][]complaint.HistoryEntry
	escalations   map[int64]complaint.EscalationRecord
	stats         map[string]complaint.CategoryStats
	userIndex     map[complaint.Principal][]int64
	nextID        int64
	administrator complaint.Principal
	escalationFee int64
}

// Registry owns all complaint state and coordinates the store, history
// ledger, escalation workflow and stats aggregator under one lock.
type Registry struct {
	mu       sync.RWMutex
	s        state
	clock    oracle.Clock
	auth     oracle.Authorizer
	payer    oracle.Payer
	treasury complaint.Principal
}

// New constructs a registry with empty state.
func New(clock oracle.Clock, auth oracle.Authorizer, payer oracle.Payer, cfg Config) *Registry {
	return &Registry{
		s: state{
			complaints:    map[int64]complaint.Complaint{},
			history:       map[int64][]complaint.HistoryEntry{},
			escalations:   map[int64]complaint.EscalationRecord{},
			stats:         map[string]complaint.CategoryStats{},
			userIndex:     map[complaint.Principal][]int64{},
			nextID:        1,
			administrator: cfg.Administrator,
			escalationFee: cfg.EscalationFee,
		},
		clock:    clock,
		auth:     auth,
		payer:    payer,
		treasury: cfg.Treasury,
	}
}

// lookupOwnedLocked returns the complaint and applies the shared owner-mutation
// guards: NotFound, NotOwner, AlreadyResolved. The closed status alone does
// not block further mutation; only the resolved flag does.
func (r *Registry) lookupOwnedLocked(caller complaint.Principal, id int64) (complaint.Complaint, error) {
	c, ok := r.s.complaints[id]
	if !ok {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	if c.Owner != caller {
		return complaint.Complaint{}, complaint.ErrNotOwner
	}
	if c.Resolved {
		return complaint.Complaint{}, complaint.ErrAlreadyResolved
	}
	return c, nil
}

// SetEscalationFee replaces the configured escalation fee. Administrator
// only; no other validation.
func (r *Registry) SetEscalationFee(caller complaint.Principal, fee int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if caller != r.s.administrator {
		return complaint.ErrUnauthorized
	}
	r.s.escalationFee = fee
	r.clock.Advance()
	return nil
}

// TransferAdministration replaces the administrator principal.
func (r *Registry) TransferAdministration(caller, next complaint.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if caller != r.s.administrator {
		return complaint.ErrUnauthorized
	}
	r.s.administrator = next
	r.clock.Advance()
	return nil
}
