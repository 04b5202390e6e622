package registry

import (
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// appendHistoryLocked records one action in the complaint's audit trail.
// The trail is a sliding window of the most recent MaxHistoryEntries
// actions; no edit or delete path exists.
func (r *Registry) appendHistoryLocked(id int64, action string, actor complaint.Principal, at uint64) {
	entry := complaint.HistoryEntry{Timestamp: at, Action: action, Actor: actor}
	r.s.history[id] = complaint.CapSuffix(append(r.s.history[id], entry), complaint.MaxHistoryEntries)
}
