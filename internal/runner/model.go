package runner

// Status represents the outcome of processing one repository.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// RepoResult is the outcome of one task on one repository.
// Matches .commitscope/run/repos/<group>-<repo>.json schema.
type RepoResult struct {
	Group        string `json:"group"`
	Repo         string `json:"repo"`
	Path         string `json:"path"`
	Status       Status `json:"status"`
	Kind         string `json:"kind,omitempty"`
	Records      int    `json:"records"`
	Malformed    int    `json:"malformed,omitempty"`
	DateFailures int    `json:"date_failures,omitempty"`
	Contributors int    `json:"contributors,omitempty"`
	Artifact     string `json:"artifact,omitempty"`
	Note         string `json:"note,omitempty"`
	DurationMS   int64  `json:"duration_ms"`
}

// Key identifies the repository within a run.
func (r RepoResult) Key() string {
	return r.Group + "-" + r.Repo
}

// LastRun represents the summary of the last batch.
// Matches .commitscope/run/last-run.json schema.
type LastRun struct {
	Task      string       `json:"task"`
	Status    string       `json:"status"` // "pass" or "fail"
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Repos     []RepoResult `json:"repos"`
}

// FailedKeys lists the repositories that failed, in run order.
func (l *LastRun) FailedKeys() []string {
	var keys []string
	for _, r := range l.Repos {
		if r.Status == StatusFail {
			keys = append(keys, r.Key())
		}
	}
	return keys
}

func tally(task string, results []RepoResult) LastRun {
	last := LastRun{Task: task, Status: "pass", Total: len(results), Repos: results}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			last.Succeeded++
		case StatusSkip:
			last.Skipped++
		default:
			last.Failed++
		}
	}
	if last.Failed > 0 {
		last.Status = "fail"
	}
	return last
}
