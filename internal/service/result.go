package service

// JobDetail is one per-entity outcome inside a scheduled job run
type JobDetail struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Info   string `json:"info,omitempty"`
}

// JobResult is the per-run summary returned by every scheduled job. A run
// with partial failures still succeeds; Errors carries the failure count
// and Details the per-entity outcomes.
type JobResult struct {
	Processed int         `json:"processed"`
	Succeeded int         `json:"succeeded"`
	Errors    int         `json:"errors"`
	Details   []JobDetail `json:"details,omitempty"`
}

func (r *JobResult) ok(id, info string) {
	r.Succeeded++
	r.Details = append(r.Details, JobDetail{ID: id, Status: "ok", Info: info})
}

func (r *JobResult) fail(id string, err error) {
	r.Errors++
	r.Details = append(r.Details, JobDetail{ID: id, Status: "error", Info: err.Error()})
}

func (r *JobResult) skip(id, info string) {
	r.Details = append(r.Details, JobDetail{ID: id, Status: "skipped", Info: info})
}
