package audit

import (
	"errors"
	"fmt"

	"github.com/acldrift/acldrift/internal/log"
)

// ErrMalformedRow marks a baseline row that cannot be turned into an access
// rule: missing required fields or unparseable rights/effect values. Rows
// failing this way are skipped individually and never abort a batch.
var ErrMalformedRow = errors.New("malformed baseline row")

// BaselineRecord is one raw row of a baseline document, fields as written in
// the source. Folder, IdentityReference, FileSystemRights and
// AccessControlType are required; Owner is optional.
type BaselineRecord struct {
	Row               int
	Folder            string
	Owner             string
	IdentityReference string
	FileSystemRights  string
	AccessControlType string
}

// RowError reports a skipped baseline row.
type RowError struct {
	Row      int
	Resource string
	Err      error
}

func (e RowError) Error() string {
	return fmt.Sprintf("baseline row %d (resource %q): %v", e.Row, e.Resource, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Baseline is the expected security state for every resource referenced by
// at least one valid baseline row, keyed by resource and iterable in first-
// reference order.
type Baseline struct {
	resources   []string
	descriptors map[string]*ExpectedDescriptor
}

// Resources returns the audited resources in first-reference order.
func (b *Baseline) Resources() []string {
	return b.resources
}

// Descriptor returns the expected descriptor for a resource.
func (b *Baseline) Descriptor(resource string) (*ExpectedDescriptor, bool) {
	d, ok := b.descriptors[resource]
	return d, ok
}

func (b *Baseline) Len() int {
	return len(b.resources)
}

// BuildBaseline groups flat baseline records into one ExpectedDescriptor per
// resource. Every valid record contributes one access rule; the first
// non-empty Owner value for a resource establishes its expected owner and
// later values are ignored. Malformed records are skipped and returned as
// RowErrors so the caller can surface them.
func BuildBaseline(records []BaselineRecord) (*Baseline, []RowError) {
	b := &Baseline{
		descriptors: make(map[string]*ExpectedDescriptor),
	}
	rowErrors := make([]RowError, 0)

	for _, rec := range records {
		if err := validateRecord(rec); err != nil {
			rowErrors = append(rowErrors, RowError{Row: rec.Row, Resource: rec.Folder, Err: err})
			log.Warnf("skipping baseline row %d: %v", rec.Row, err)
			continue
		}

		rule, err := newBaselineRule(rec.IdentityReference, rec.FileSystemRights, rec.AccessControlType)
		if err != nil {
			wrapped := fmt.Errorf("%w: %w", ErrMalformedRow, err)
			rowErrors = append(rowErrors, RowError{Row: rec.Row, Resource: rec.Folder, Err: wrapped})
			log.Warnf("skipping baseline row %d for %s: %v", rec.Row, rec.Folder, err)
			continue
		}

		desc, ok := b.descriptors[rec.Folder]
		if !ok {
			desc = &ExpectedDescriptor{Resource: rec.Folder}
			b.descriptors[rec.Folder] = desc
			b.resources = append(b.resources, rec.Folder)
		}
		if rec.Owner != "" {
			if desc.Owner == "" {
				desc.Owner = rec.Owner
			} else if desc.Owner != rec.Owner {
				log.Debugf("resource %s: ignoring conflicting owner %q (keeping %q)", rec.Folder, rec.Owner, desc.Owner)
			}
		}
		desc.Rules = append(desc.Rules, rule)
	}

	return b, rowErrors
}

func validateRecord(rec BaselineRecord) error {
	missing := make([]string, 0, 4)
	if rec.Folder == "" {
		missing = append(missing, "Folder")
	}
	if rec.IdentityReference == "" {
		missing = append(missing, "IdentityReference")
	}
	if rec.FileSystemRights == "" {
		missing = append(missing, "FileSystemRights")
	}
	if rec.AccessControlType == "" {
		missing = append(missing, "AccessControlType")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields %v", ErrMalformedRow, missing)
	}
	return nil
}
