package audit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/acldrift/acldrift/internal/input"
	"github.com/acldrift/acldrift/internal/log"
)

// snapshotDocument is the wire shape of a live-descriptor snapshot: a JSON
// document exported on the audited system, one entry per resource.
type snapshotDocument struct {
	Descriptors []snapshotDescriptor `json:"descriptors"`
}

type snapshotDescriptor struct {
	Path  string         `json:"path"`
	Owner string         `json:"owner"`
	Rules []snapshotRule `json:"rules"`

	// Unreadable marks a resource whose descriptor the exporter could not
	// read; fetching it fails with ErrAccessDenied.
	Unreadable bool `json:"unreadable,omitempty"`
}

type snapshotRule struct {
	Identity string `json:"identity"`
	Rights   string `json:"rights"`
	Type     string `json:"type"`
}

// SnapshotProvider serves live descriptors out of a snapshot document.
type SnapshotProvider struct {
	descriptors map[string]LiveDescriptor
	unreadable  map[string]struct{}
}

// NewSnapshotProvider loads a snapshot from a file path ("-" for stdin,
// "~" expansion supported).
func NewSnapshotProvider(path string) (*SnapshotProvider, error) {
	reader, err := input.GetReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open snapshot %s: %w", path, err)
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}
	return ReadSnapshot(reader)
}

// ReadSnapshot parses a snapshot document. Rule rights may be symbolic or
// numeric; rules that fail to parse are dropped from their descriptor with a
// warning rather than failing the whole snapshot.
func ReadSnapshot(r io.Reader) (*SnapshotProvider, error) {
	var doc snapshotDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode snapshot: %w", err)
	}

	p := &SnapshotProvider{
		descriptors: make(map[string]LiveDescriptor, len(doc.Descriptors)),
		unreadable:  make(map[string]struct{}),
	}
	for _, d := range doc.Descriptors {
		if d.Unreadable {
			p.unreadable[d.Path] = struct{}{}
			continue
		}
		desc := LiveDescriptor{
			Resource: d.Path,
			Owner:    d.Owner,
			Rules:    make([]AccessRule, 0, len(d.Rules)),
		}
		for _, sr := range d.Rules {
			rule, err := newLiveRule(sr.Identity, sr.Rights, sr.Type)
			if err != nil {
				log.Warnf("snapshot %s: dropping rule for %q: %v", d.Path, sr.Identity, err)
				continue
			}
			desc.Rules = append(desc.Rules, rule)
		}
		p.descriptors[d.Path] = desc
	}
	return p, nil
}

// Fetch implements DescriptorProvider.
func (p *SnapshotProvider) Fetch(resource string) (LiveDescriptor, error) {
	if _, ok := p.unreadable[resource]; ok {
		return LiveDescriptor{}, fmt.Errorf("%s: %w", resource, ErrAccessDenied)
	}
	desc, ok := p.descriptors[resource]
	if !ok {
		return LiveDescriptor{}, fmt.Errorf("%s: %w", resource, ErrNotFound)
	}
	return desc, nil
}

// Len returns the number of readable descriptors in the snapshot.
func (p *SnapshotProvider) Len() int {
	return len(p.descriptors)
}
