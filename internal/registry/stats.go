package registry

// recordSubmissionLocked bumps the category's submission counter. A
// category entry exists only from its first submission onward.
func (r *Registry) recordSubmissionLocked(category string) {
	st := r.s.stats[category]
	st.Count++
	r.s.stats[category] = st
}

// recordResolutionLocked folds one resolution time into the running mean.
// The mean stays exact: after n resolutions it equals the arithmetic mean
// of all n observed times, computed incrementally rather than by replay.
func (r *Registry) recordResolutionLocked(category string, resolutionTime uint64) {
	st := r.s.stats[category]
	n := float64(st.Resolved)
	st.AverageResolutionTime = (st.AverageResolutionTime*n + float64(resolutionTime)) / (n + 1)
	st.Resolved++
	r.s.stats[category] = st
}
