package complaint

import "strings"

// Principal is an opaque identifier for an actor (owner, administrator,
// involved party, arbiter).
type Principal string

// Status enumerates lifecycle states for complaints.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusEscalated  Status = "escalated"
	StatusClosed     Status = "closed"
)

// List caps and field limits.
const (
	MaxDescriptionLen  = 512
	MaxAttachments     = 5
	MaxInvolvedParties = 10
	MaxHistoryEntries  = 20
	MaxUserComplaints  = 100
	MaxEscalationLevel = 3
)

// Complaint is the aggregate for a filed grievance. Timestamps are logical
// clock readings, not wall time.
type Complaint struct {
	ID              int64       `json:"id"`
	Owner           Principal   `json:"owner"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Status          Status      `json:"status"`
	Resolved        bool        `json:"resolved"`
	EscalationLevel int         `json:"escalationLevel"`
	Attachments     []string    `json:"attachments,omitempty"`
	InvolvedParties []Principal `json:"involvedParties,omitempty"`
	CreatedAt       uint64      `json:"createdAt"`
	UpdatedAt       uint64      `json:"updatedAt"`
}

// HistoryEntry is one record of the per-complaint audit trail.
type HistoryEntry struct {
	Timestamp uint64    `json:"timestamp"`
	Action    string    `json:"action"`
	Actor     Principal `json:"actor"`
}

// EscalationRecord tracks the arbitration sub-state of an escalated
// complaint. Fields move from unset to set and never revert.
type EscalationRecord struct {
	Arbiter  *Principal `json:"arbiter,omitempty"`
	Proposal *string    `json:"proposal,omitempty"`
}

// CategoryStats aggregates per-category counters. AverageResolutionTime is
// an exact streaming mean over all resolution times recorded so far; it is
// meaningful only when Resolved > 0.
type CategoryStats struct {
	Count                 uint64  `json:"count"`
	Resolved              uint64  `json:"resolved"`
	AverageResolutionTime float64 `json:"averageResolutionTime"`
}

// ValidateStatus rejects labels outside the fixed five-value set.
func ValidateStatus(s Status) error {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusEscalated, StatusClosed:
		return nil
	default:
		return ErrInvalidStatus
	}
}

// ValidateDescription enforces the 1..512 char bound.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" || len(desc) > MaxDescriptionLen {
		return ErrInvalidInput
	}
	return nil
}

// ValidateCategory rejects empty category labels.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrInvalidCategory
	}
	return nil
}

// IsInvolved reports whether p appears in the complaint's involved parties.
func (c *Complaint) IsInvolved(p Principal) bool {
	for _, party := range c.InvolvedParties {
		if party == p {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to callers.
func (c Complaint) Clone() Complaint {
	c.Attachments = append([]string(nil), c.Attachments...)
	c.InvolvedParties = append([]Principal(nil), c.InvolvedParties...)
	return c
}

// Clone returns a deep copy of the record.
func (r EscalationRecord) Clone() EscalationRecord {
	if r.Arbiter != nil {
		a := *r.Arbiter
		r.Arbiter = &a
	}
	if r.Proposal != nil {
		p := *r.Proposal
		r.Proposal = &p
	}
	return r
}

// CapPrefix keeps at most cap elements from the front of list. Attachments
// and involved parties overflow by dropping the newest entries beyond the
// cap, not the oldest.
func CapPrefix[T any](list []T, cap int) []T {
	if len(list) <= cap {
		return list
	}
	return list[:cap]
}

// CapSuffix keeps at most cap of the most recent elements (drop-oldest
// sliding window). History and per-user indexes overflow this way.
func CapSuffix[T any](list []T, cap int) []T {
	if len(list) <= cap {
		return list
	}
	return list[len(list)-cap:]
}
