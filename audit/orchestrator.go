package audit

import (
	"fmt"

	"github.com/acldrift/acldrift/internal/bus"
	"github.com/acldrift/acldrift/internal/log"
)

// Orchestrator coordinates one audit run: baseline ingestion, then one
// reconciliation per resource. Ingestion completes fully before any
// reconciliation begins; resources are processed independently, in baseline
// order.
type Orchestrator struct {
	Policy   Policy
	Provider DescriptorProvider
}

// NewOrchestrator creates an Orchestrator with the given policy and live
// descriptor provider.
func NewOrchestrator(policy Policy, provider DescriptorProvider) (*Orchestrator, error) {
	if provider == nil {
		return nil, fmt.Errorf("descriptor provider cannot be nil")
	}
	return &Orchestrator{
		Policy:   policy,
		Provider: provider,
	}, nil
}

// Audit reconciles every resource of the baseline against the live
// descriptors and returns the aggregated response. The run is best-effort:
// malformed baseline rows and unreachable resources are surfaced as warnings
// and error targets, never as a run failure.
func (o *Orchestrator) Audit(argv []string, records []BaselineRecord) *RunResponse {
	response := NewRunResponse(argv, o.Policy)

	baseline, rowErrors := BuildBaseline(records)
	response.Run.Summary.SkippedRows = len(rowErrors)
	for _, rowErr := range rowErrors {
		bus.Warn(rowErr.Error())
	}

	for _, resource := range baseline.Resources() {
		expected, _ := baseline.Descriptor(resource)

		live, err := o.Provider.Fetch(resource)
		if err != nil {
			log.Warnf("skipping %s: %v", resource, err)
			bus.Warn(fmt.Sprintf("reconciliation skipped for %s: %v", resource, err))
			response.AddTarget(newErrorTarget(resource, *expected, err))
			continue
		}

		ownerDeviation, deviations := ReconcileResource(*expected, live)
		if ownerDeviation {
			bus.Warn(fmt.Sprintf("owner mismatch for %s: expected %q, observed %q", resource, expected.Owner, live.Owner))
		}
		response.AddTarget(newTargetResult(*expected, live, ownerDeviation, deviations, o.Policy))
	}

	return response
}
