package audit

// Classification is the three-way reconciliation outcome for a single rule.
type Classification string

const (
	// Compliant: the rule is declared in the baseline and present live.
	Compliant Classification = "compliant"
	// BaselineOnly: the rule is declared but absent from the live descriptor.
	BaselineOnly Classification = "baseline-only"
	// LiveOnly: the rule is present live but undeclared.
	LiveOnly Classification = "live-only"
)

// DeviationRecord is one reconciled rule. Owner carries the observed (live)
// owner of the resource, not the expected one.
type DeviationRecord struct {
	Resource       string
	Owner          string
	Identity       string
	Rights         FileSystemRights
	Effect         Effect
	Classification Classification
}

// ReconcileResource compares the expected descriptor for a resource against
// its live descriptor and classifies every rule on both sides exactly once.
//
// Baseline rules are walked in insertion order; each searches the live rules
// for an unconsumed match on (identity, effect) whose rights are equal or
// whose raw generic mask decodes to the expected rights. A matching live rule
// is consumed so it cannot satisfy a second baseline rule; when several live
// rules qualify, the first in snapshot order wins and the rest stay eligible.
// Unmatched baseline rules emit BaselineOnly, leftover live rules LiveOnly,
// in that order.
//
// The returned ownerDeviation is true when the baseline declares an owner
// that differs (exact string compare) from the live owner; it never stops
// rule reconciliation. The function is pure: identical inputs yield an
// identical record sequence, and resources reconcile independently of one
// another.
func ReconcileResource(expected ExpectedDescriptor, live LiveDescriptor) (ownerDeviation bool, records []DeviationRecord) {
	ownerDeviation = expected.Owner != "" && expected.Owner != live.Owner

	consumed := make([]bool, len(live.Rules))
	records = make([]DeviationRecord, 0, len(expected.Rules)+len(live.Rules))

	for _, er := range expected.Rules {
		matched := false
		for i, lr := range live.Rules {
			if consumed[i] || !ruleMatches(er, lr) {
				continue
			}
			consumed[i] = true
			matched = true
			break
		}
		classification := BaselineOnly
		if matched {
			classification = Compliant
		}
		records = append(records, DeviationRecord{
			Resource:       expected.Resource,
			Owner:          live.Owner,
			Identity:       er.Identity,
			Rights:         er.Rights,
			Effect:         er.Effect,
			Classification: classification,
		})
	}

	for i, lr := range live.Rules {
		if consumed[i] {
			continue
		}
		records = append(records, DeviationRecord{
			Resource:       expected.Resource,
			Owner:          live.Owner,
			Identity:       lr.Identity,
			Rights:         lr.Rights,
			Effect:         lr.Effect,
			Classification: LiveOnly,
		})
	}

	return ownerDeviation, records
}

// ruleMatches reports whether a live rule satisfies an expected rule. Rights
// match either exactly or via the generic decode of the live rule's raw
// mask, so a baseline written in fine-grained rights still matches a live
// grant made through a generic mask.
func ruleMatches(expected, live AccessRule) bool {
	if expected.Identity != live.Identity || expected.Effect != live.Effect {
		return false
	}
	if expected.Rights == live.Rights {
		return true
	}
	return live.Raw.Numeric && MapGenericToFileSystemRights(live.Raw.Mask) == expected.Rights
}
