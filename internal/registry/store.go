package registry

import (
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// History action labels.
const (
	actionSubmitted          = "submitted"
	actionClosed             = "closed"
	actionEscalated          = "escalated"
	actionResolutionProposed = "resolution-proposed"
	actionResolutionAccepted = "resolution-accepted"
	actionArbiterAssigned    = "arbiter-assigned"
)

// Submit files a new complaint and returns its id. Validation runs in full
// before any state is touched, so a failed submit is a no-op.
func (r *Registry) Submit(caller complaint.Principal, description, category string, attachments []string, parties []complaint.Principal) (int64, error) {
	if err := complaint.ValidateDescription(description); err != nil {
		return 0, err
	}
	if err := complaint.ValidateCategory(category); err != nil {
		return 0, err
	}
	if len(attachments) > complaint.MaxAttachments || len(parties) > complaint.MaxInvolvedParties {
		return 0, complaint.ErrCapacityExceeded
	}
	if !r.auth.IsRegistered(caller) {
		return 0, complaint.ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	id := r.s.nextID
	r.s.nextID++

	c := complaint.Complaint{
		ID:              id,
		Owner:           caller,
		Description:     description,
		Category:        category,
		Status:          complaint.StatusOpen,
		Resolved:        false,
		EscalationLevel: 0,
		Attachments:     append([]string(nil), attachments...),
		InvolvedParties: append([]complaint.Principal(nil), parties...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.s.complaints[id] = c
	r.s.userIndex[caller] = complaint.CapSuffix(append(r.s.userIndex[caller], id), complaint.MaxUserComplaints)
	r.appendHistoryLocked(id, actionSubmitted, caller, now)
	r.recordSubmissionLocked(category)
	r.clock.Advance()
	return id, nil
}

// UpdateInput carries the optional fields of an update. Nil means "leave
// unchanged"; AddAttachments and AddParties append.
type UpdateInput struct {
	Description    *string
	Status         *complaint.Status
	AddAttachments []string
	AddParties     []complaint.Principal
}

// Update edits an open complaint. Merged attachment and party lists are
// silently truncated at their caps rather than rejected; submit is the
// strict one. The two policies are deliberate and must stay distinct.
func (r *Registry) Update(caller complaint.Principal, id int64, in UpdateInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookupOwnedLocked(caller, id)
	if err != nil {
		return err
	}
	if in.Description != nil {
		if err := complaint.ValidateDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if err := complaint.ValidateStatus(*in.Status); err != nil {
			return err
		}
	}

	now := r.clock.Now()
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if len(in.AddAttachments) > 0 {
		c.Attachments = complaint.CapPrefix(append(c.Attachments, in.AddAttachments...), complaint.MaxAttachments)
	}
	if len(in.AddParties) > 0 {
		c.InvolvedParties = complaint.CapPrefix(append(c.InvolvedParties, in.AddParties...), complaint.MaxInvolvedParties)
	}
	c.UpdatedAt = now
	r.s.complaints[id] = c
	r.appendHistoryLocked(id, "updated:"+string(c.Status), caller, now)
	r.clock.Advance()
	return nil
}

// Close marks a complaint closed. Closing does not set the resolved flag;
// a closed complaint can still be updated or escalated until resolved.
func (r *Registry) Close(caller complaint.Principal, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookupOwnedLocked(caller, id)
	if err != nil {
		return err
	}
	now := r.clock.Now()
	c.Status = complaint.StatusClosed
	c.UpdatedAt = now
	r.s.complaints[id] = c
	r.appendHistoryLocked(id, actionClosed, caller, now)
	r.clock.Advance()
	return nil
}
