package audit

// ExpectedDescriptor is the declared security state for one resource,
// assembled from every baseline row that references it. Rules keep baseline
// insertion order; reconciliation reads the descriptor and never mutates it.
type ExpectedDescriptor struct {
	// Resource is the audited path as written in the baseline.
	Resource string

	// Owner is the expected owner, empty when the baseline declares none.
	Owner string

	Rules []AccessRule
}

// LiveDescriptor is the observed security state for one resource, an
// immutable snapshot for the duration of a reconciliation.
type LiveDescriptor struct {
	Resource string
	Owner    string
	Rules    []AccessRule
}
