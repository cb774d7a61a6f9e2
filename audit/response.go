package audit

import (
	"github.com/google/uuid"

	"github.com/acldrift/acldrift/internal"
)

// Target statuses.
const (
	StatusCompliant = "compliant"
	StatusDrift     = "drift"
	StatusError     = "error"
)

// RunResponse is the complete JSON response structure for an audit run.
type RunResponse struct {
	Tool    string     `json:"tool"`
	Version string     `json:"version"`
	Run     RunDetails `json:"run"`
}

// RunDetails contains the execution details and results.
type RunDetails struct {
	ID      string         `json:"id"`
	Argv    []string       `json:"argv"`
	Policy  PolicyConfig   `json:"policy"`
	Summary RunSummary     `json:"summary"`
	Targets []TargetResult `json:"targets"`
}

// PolicyConfig records the audit policy used for the run.
type PolicyConfig struct {
	IgnoreIdentities []string `json:"ignoreIdentities"`
}

// RunSummary is the run-level tally across all targets.
type RunSummary struct {
	Resources       int `json:"resources"`
	Compliant       int `json:"compliant"`
	Drift           int `json:"drift"`
	Errors          int `json:"errors"`
	SkippedRows     int `json:"skippedRows"`
	OwnerDeviations int `json:"ownerDeviations"`
	BaselineOnly    int `json:"baselineOnly"`
	LiveOnly        int `json:"liveOnly"`
	Ignored         int `json:"ignored"`
}

// TargetResult is the reconciliation result for a single resource.
type TargetResult struct {
	Resource string        `json:"resource"`
	Status   string        `json:"status"` // compliant | drift | error
	Reason   string        `json:"reason,omitempty"`
	Owner    OwnerResult   `json:"owner"`
	Summary  TargetSummary `json:"summary"`
	Findings []Finding     `json:"findings"`
}

// OwnerResult reports the owner comparison for a resource.
type OwnerResult struct {
	Expected  string `json:"expected,omitempty"`
	Observed  string `json:"observed,omitempty"`
	Deviation bool   `json:"deviation"`
}

// TargetSummary counts reconciled rules by classification. Ignored live-only
// rules are counted here, not under LiveOnly.
type TargetSummary struct {
	Compliant    int `json:"compliant"`
	BaselineOnly int `json:"baselineOnly"`
	LiveOnly     int `json:"liveOnly"`
	Ignored      int `json:"ignored"`
}

// Finding is one reconciled rule in report order: baseline rules first, in
// baseline order, then unmatched live rules.
type Finding struct {
	Classification Classification `json:"classification"`
	Identity       string         `json:"identity"`
	Rights         string         `json:"rights"`
	Effect         Effect         `json:"effect"`
	Ignored        bool           `json:"ignored,omitempty"`
}

// NewRunResponse creates a RunResponse shell for the given invocation.
func NewRunResponse(argv []string, policy Policy) *RunResponse {
	return &RunResponse{
		Tool:    internal.ApplicationName,
		Version: internal.ApplicationVersion,
		Run: RunDetails{
			ID:   uuid.Must(uuid.NewRandom()).String(),
			Argv: argv,
			Policy: PolicyConfig{
				IgnoreIdentities: policy.Patterns(),
			},
			Targets: []TargetResult{},
		},
	}
}

// AddTarget appends a target result and folds it into the run summary.
func (r *RunResponse) AddTarget(target TargetResult) {
	r.Run.Targets = append(r.Run.Targets, target)
	r.Run.Summary.Resources++
	switch target.Status {
	case StatusCompliant:
		r.Run.Summary.Compliant++
	case StatusDrift:
		r.Run.Summary.Drift++
	case StatusError:
		r.Run.Summary.Errors++
	}
	if target.Owner.Deviation {
		r.Run.Summary.OwnerDeviations++
	}
	r.Run.Summary.BaselineOnly += target.Summary.BaselineOnly
	r.Run.Summary.LiveOnly += target.Summary.LiveOnly
	r.Run.Summary.Ignored += target.Summary.Ignored
}

// IsFailed returns true if any target drifted or errored.
func (r *RunResponse) IsFailed() bool {
	for _, t := range r.Run.Targets {
		if t.Status != StatusCompliant {
			return true
		}
	}
	return false
}

// newTargetResult classifies a reconciled resource into a TargetResult,
// applying the policy's ignore patterns to live-only findings.
func newTargetResult(expected ExpectedDescriptor, live LiveDescriptor, ownerDeviation bool, records []DeviationRecord, policy Policy) TargetResult {
	target := TargetResult{
		Resource: expected.Resource,
		Owner: OwnerResult{
			Expected:  expected.Owner,
			Observed:  live.Owner,
			Deviation: ownerDeviation,
		},
		Findings: make([]Finding, 0, len(records)),
	}

	for _, rec := range records {
		finding := Finding{
			Classification: rec.Classification,
			Identity:       rec.Identity,
			Rights:         rec.Rights.String(),
			Effect:         rec.Effect,
		}
		switch rec.Classification {
		case Compliant:
			target.Summary.Compliant++
		case BaselineOnly:
			target.Summary.BaselineOnly++
		case LiveOnly:
			if policy.IsIgnored(rec.Identity) {
				finding.Ignored = true
				target.Summary.Ignored++
			} else {
				target.Summary.LiveOnly++
			}
		}
		target.Findings = append(target.Findings, finding)
	}

	target.Status = StatusCompliant
	if ownerDeviation || target.Summary.BaselineOnly > 0 || target.Summary.LiveOnly > 0 {
		target.Status = StatusDrift
	}
	return target
}

// newErrorTarget records a resource whose live descriptor was unavailable.
func newErrorTarget(resource string, expected ExpectedDescriptor, err error) TargetResult {
	return TargetResult{
		Resource: resource,
		Status:   StatusError,
		Reason:   err.Error(),
		Owner: OwnerResult{
			Expected: expected.Owner,
		},
		Findings: []Finding{},
	}
}
