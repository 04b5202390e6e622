package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// ArchiveRepository mirrors complaint snapshots and history entries into
// postgres. It implements grievance.Archiver. The in-memory registry stays
// authoritative; rows here are an observational record, upserted per
// mutation so the latest snapshot always wins.
type ArchiveRepository struct {
	pool *pgxpool.Pool
}

func NewArchiveRepository(pool *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{pool: pool}
}

func (r *ArchiveRepository) ArchiveComplaint(ctx context.Context, c complaint.Complaint) error {
	parties := make([]string, len(c.InvolvedParties))
	for i, p := range c.InvolvedParties {
		parties[i] = string(p)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO complaint_snapshots
		(complaint_id, owner, description, category, status, resolved, escalation_level, attachments, involved_parties, created_height, updated_height, archived_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (complaint_id) DO UPDATE SET
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			resolved = EXCLUDED.resolved,
			escalation_level = EXCLUDED.escalation_level,
			attachments = EXCLUDED.attachments,
			involved_parties = EXCLUDED.involved_parties,
			updated_height = EXCLUDED.updated_height,
			archived_at = EXCLUDED.archived_at
	`, c.ID, string(c.Owner), c.Description, c.Category, string(c.Status), c.Resolved, c.EscalationLevel,
		c.Attachments, parties, int64(c.CreatedAt), int64(c.UpdatedAt), time.Now().UTC())
	return err
}

func (r *ArchiveRepository) ArchiveHistory(ctx context.Context, id int64, entry complaint.HistoryEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO complaint_history
		(entry_id, complaint_id, height, action, actor, archived_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, uuid.New(), id, int64(entry.Timestamp), entry.Action, string(entry.Actor), time.Now().UTC())
	return err
}
