package registry

import (
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Escalate raises a complaint one escalation level, charging the caller the
// configured fee. The payment runs after all checks and before any state
// change: a rejected transfer aborts the whole operation.
func (r *Registry) Escalate(caller complaint.Principal, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookupOwnedLocked(caller, id)
	if err != nil {
		return err
	}
	if c.EscalationLevel >= complaint.MaxEscalationLevel {
		return complaint.ErrEscalationLimitReached
	}
	if err := r.payer.Transfer(r.s.escalationFee, caller, r.treasury); err != nil {
		return complaint.ErrPaymentFailed
	}

	now := r.clock.Now()
	c.EscalationLevel++
	c.Status = complaint.StatusEscalated
	c.UpdatedAt = now
	r.s.complaints[id] = c
	// Re-escalation keeps any existing proposal and arbiter.
	if _, ok := r.s.escalations[id]; !ok {
		r.s.escalations[id] = complaint.EscalationRecord{}
	}
	r.appendHistoryLocked(id, actionEscalated, caller, now)
	r.clock.Advance()
	return nil
}

// ProposeResolution records a settlement proposal from an involved party.
// Last writer wins.
func (r *Registry) ProposeResolution(caller complaint.Principal, id int64, proposal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.s.complaints[id]
	if !ok {
		return complaint.ErrNotFound
	}
	rec, ok := r.s.escalations[id]
	if !ok {
		return complaint.ErrNotFound
	}
	if !c.IsInvolved(caller) {
		return complaint.ErrUnauthorized
	}

	now := r.clock.Now()
	rec.Proposal = &proposal
	r.s.escalations[id] = rec
	r.appendHistoryLocked(id, actionResolutionProposed, caller, now)
	r.clock.Advance()
	return nil
}

// AcceptResolution lets the owner accept the standing proposal, resolving
// the complaint permanently and feeding the resolution time into the
// category stats.
func (r *Registry) AcceptResolution(caller complaint.Principal, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.s.complaints[id]
	if !ok {
		return complaint.ErrNotFound
	}
	if c.Owner != caller {
		return complaint.ErrNotOwner
	}
	if c.Resolved {
		return complaint.ErrAlreadyResolved
	}
	rec, ok := r.s.escalations[id]
	if !ok || rec.Proposal == nil {
		return complaint.ErrInvalidStatus
	}

	now := r.clock.Now()
	c.Status = complaint.StatusResolved
	c.Resolved = true
	c.UpdatedAt = now
	r.s.complaints[id] = c
	r.recordResolutionLocked(c.Category, now-c.CreatedAt)
	r.appendHistoryLocked(id, actionResolutionAccepted, caller, now)
	r.clock.Advance()
	return nil
}

// AssignArbiter lets the administrator appoint an arbiter for an escalated
// complaint. Overwriting a previous arbiter is allowed.
func (r *Registry) AssignArbiter(caller complaint.Principal, id int64, arbiter complaint.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.s.administrator {
		return complaint.ErrUnauthorized
	}
	if _, ok := r.s.complaints[id]; !ok {
		return complaint.ErrNotFound
	}
	rec, ok := r.s.escalations[id]
	if !ok {
		return complaint.ErrNotFound
	}

	now := r.clock.Now()
	rec.Arbiter = &arbiter
	r.s.escalations[id] = rec
	r.appendHistoryLocked(id, actionArbiterAssigned, caller, now)
	r.clock.Advance()
	return nil
}
