// Package grievance is the application layer over the complaint registry:
// it runs the registry operations, emits the structured audit log, feeds
// category stats to the alert evaluator and mirrors successful mutations
// into the archive.
package grievance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/grievance-hub/grievance-hub/internal/application/alert"
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/registry"
)

// Archiver mirrors complaint snapshots and history entries into durable
// storage. Archive failures never fail the operation; the in-memory
// registry stays the source of truth.
type Archiver interface {
	ArchiveComplaint(ctx context.Context, c complaint.Complaint) error
	ArchiveHistory(ctx context.Context, id int64, entry complaint.HistoryEntry) error
}

// Service wires the registry to logging, alerting and archival.
type Service struct {
	reg     *registry.Registry
	archive Archiver
	alerts  *alert.Evaluator
	logger  zerolog.Logger
}

// NewService creates the grievance service. archive and alerts may be nil.
func NewService(reg *registry.Registry, archive Archiver, alerts *alert.Evaluator, logger zerolog.Logger) *Service {
	return &Service{
		reg:     reg,
		archive: archive,
		alerts:  alerts,
		logger:  logger.With().Str("service", "grievance").Logger(),
	}
}

// Submit files a complaint on behalf of caller.
func (s *Service) Submit(ctx context.Context, caller complaint.Principal, description, category string, attachments []string, parties []complaint.Principal) (int64, error) {
	id, err := s.reg.Submit(caller, description, category, attachments, parties)
	if err != nil {
		return 0, err
	}
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Str("category", category).
		Msg("complaint submitted")
	s.mirror(ctx, id)
	s.checkAlerts(category)
	return id, nil
}

// Update edits a complaint.
func (s *Service) Update(ctx context.Context, caller complaint.Principal, id int64, in registry.UpdateInput) error {
	if err := s.reg.Update(caller, id, in); err != nil {
		return err
	}
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Msg("complaint updated")
	s.mirror(ctx, id)
	return nil
}

// Close closes a complaint.
func (s *Service) Close(ctx context.Context, caller complaint.Principal, id int64) error {
	if err := s.reg.Close(caller, id); err != nil {
		return err
	}
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Msg("complaint closed")
	s.mirror(ctx, id)
	return nil
}

// Escalate raises a complaint's escalation level.
func (s *Service) Escalate(ctx context.Context, caller complaint.Principal, id int64) error {
	if err := s.reg.Escalate(caller, id); err != nil {
		return err
	}
	c, _ := s.reg.Get(id)
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Int("level", c.EscalationLevel).
		Msg("complaint escalated")
	s.mirror(ctx, id)
	return nil
}

// ProposeResolution records a settlement proposal.
func (s *Service) ProposeResolution(ctx context.Context, caller complaint.Principal, id int64, proposal string) error {
	if err := s.reg.ProposeResolution(caller, id, proposal); err != nil {
		return err
	}
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Msg("resolution proposed")
	s.mirror(ctx, id)
	return nil
}

// AcceptResolution accepts the standing proposal.
func (s *Service) AcceptResolution(ctx context.Context, caller complaint.Principal, id int64) error {
	if err := s.reg.AcceptResolution(caller, id); err != nil {
		return err
	}
	c, _ := s.reg.Get(id)
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Str("category", c.Category).
		Msg("resolution accepted")
	s.mirror(ctx, id)
	s.checkAlerts(c.Category)
	return nil
}

// AssignArbiter appoints an arbiter for an escalated complaint.
func (s *Service) AssignArbiter(ctx context.Context, caller complaint.Principal, id int64, arbiter complaint.Principal) error {
	if err := s.reg.AssignArbiter(caller, id, arbiter); err != nil {
		return err
	}
	s.logger.Info().
		Int64("complaintId", id).
		Str("actor", string(caller)).
		Str("arbiter", string(arbiter)).
		Msg("arbiter assigned")
	s.mirror(ctx, id)
	return nil
}

// SetEscalationFee replaces the escalation fee.
func (s *Service) SetEscalationFee(caller complaint.Principal, fee int64) error {
	if err := s.reg.SetEscalationFee(caller, fee); err != nil {
		return err
	}
	s.logger.Info().
		Str("actor", string(caller)).
		Int64("fee", fee).
		Msg("escalation fee updated")
	return nil
}

// TransferAdministration replaces the administrator principal.
func (s *Service) TransferAdministration(caller, next complaint.Principal) error {
	if err := s.reg.TransferAdministration(caller, next); err != nil {
		return err
	}
	s.logger.Info().
		Str("actor", string(caller)).
		Str("next", string(next)).
		Msg("administration transferred")
	return nil
}

// Read-side pass-throughs.

func (s *Service) Get(id int64) (complaint.Complaint, bool) { return s.reg.Get(id) }

func (s *Service) History(id int64) ([]complaint.HistoryEntry, bool) { return s.reg.History(id) }

func (s *Service) UserComplaints(p complaint.Principal) ([]int64, bool) {
	return s.reg.UserComplaints(p)
}

func (s *Service) CategoryStats(category string) (complaint.CategoryStats, bool) {
	return s.reg.CategoryStats(category)
}

func (s *Service) Escalation(id int64) (complaint.EscalationRecord, bool) {
	return s.reg.Escalation(id)
}

func (s *Service) IsInvolved(id int64, p complaint.Principal) (bool, error) {
	return s.reg.IsInvolved(id, p)
}

func (s *Service) Snapshot() registry.Stats { return s.reg.Snapshot() }

// mirror copies the complaint's current snapshot and newest history entry
// into the archive. Best effort only.
func (s *Service) mirror(ctx context.Context, id int64) {
	if s.archive == nil {
		return
	}
	c, ok := s.reg.Get(id)
	if !ok {
		return
	}
	if err := s.archive.ArchiveComplaint(ctx, c); err != nil {
		s.logger.Error().Err(err).Int64("complaintId", id).Msg("failed to archive complaint snapshot")
	}
	if entries, ok := s.reg.History(id); ok && len(entries) > 0 {
		latest := entries[len(entries)-1]
		if err := s.archive.ArchiveHistory(ctx, id, latest); err != nil {
			s.logger.Error().Err(err).Int64("complaintId", id).Msg("failed to archive history entry")
		}
	}
}

func (s *Service) checkAlerts(category string) {
	st, ok := s.reg.CategoryStats(category)
	if !ok {
		return
	}
	for _, name := range s.alerts.Evaluate(category, st) {
		s.logger.Warn().
			Str("rule", name).
			Str("category", category).
			Uint64("count", st.Count).
			Uint64("resolved", st.Resolved).
			Float64("averageResolutionTime", st.AverageResolutionTime).
			Msg("category alert rule fired")
	}
}
