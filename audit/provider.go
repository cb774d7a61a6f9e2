package audit

import "errors"

var (
	// ErrNotFound: the provider has no descriptor for the resource.
	ErrNotFound = errors.New("resource not found")

	// ErrAccessDenied: the descriptor exists but could not be read.
	ErrAccessDenied = errors.New("access denied")
)

// DescriptorProvider supplies the live security descriptor for a resource.
// Implementations return errors wrapping ErrNotFound or ErrAccessDenied when
// a resource is unreachable; the engine treats both as "skip this resource,
// log, continue" and never aborts the run over them.
type DescriptorProvider interface {
	Fetch(resource string) (LiveDescriptor, error)
}
