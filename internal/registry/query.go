package registry

import (
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Get returns a deep copy of the complaint, or ok=false if absent.
func (r *Registry) Get(id int64) (complaint.Complaint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return complaint.Complaint{}, false
	}
	return c.Clone(), true
}

// History returns the complaint's audit trail, oldest first.
func (r *Registry) History(id int64) ([]complaint.HistoryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.s.history[id]
	if !ok {
		return nil, false
	}
	return append([]complaint.HistoryEntry(nil), entries...), true
}

// UserComplaints returns the ids owned by a principal, oldest first.
func (r *Registry) UserComplaints(p complaint.Principal) ([]int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.s.userIndex[p]
	if !ok {
		return nil, false
	}
	return append([]int64(nil), ids...), true
}

// CategoryStats returns the aggregate counters for a category. Categories
// with no submissions have no entry.
func (r *Registry) CategoryStats(category string) (complaint.CategoryStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.s.stats[category]
	return st, ok
}

// Escalation returns the escalation record, or ok=false if the complaint
// was never escalated.
func (r *Registry) Escalation(id int64) (complaint.EscalationRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.s.escalations[id]
	if !ok {
		return complaint.EscalationRecord{}, false
	}
	return rec.Clone(), true
}

// IsInvolved reports whether p is an involved party of the complaint. It is
// the one read that fails on an unknown id.
func (r *Registry) IsInvolved(id int64, p complaint.Principal) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return false, complaint.ErrNotFound
	}
	return c.IsInvolved(p), nil
}

// Administrator returns the current administrator principal.
func (r *Registry) Administrator() complaint.Principal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.administrator
}

// EscalationFee returns the currently configured fee.
func (r *Registry) EscalationFee() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.escalationFee
}

// Stats summarizes registry-wide state for health and monitoring surfaces.
type Stats struct {
	Complaints  int    `json:"complaints"`
	Escalations int    `json:"escalations"`
	Categories  int    `json:"categories"`
	NextID      int64  `json:"nextId"`
	Height      uint64 `json:"height"`
}

// Snapshot returns current registry-wide counters.
func (r *Registry) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Complaints:  len(r.s.complaints),
		Escalations: len(r.s.escalations),
		Categories:  len(r.s.stats),
		NextID:      r.s.nextID,
		Height:      r.clock.Now(),
	}
}
