package registry

import "fmt"

// DuplicateModuleError reports two descriptors sharing one module name.
// The registry keeps the first descriptor so the rest of the pipeline can
// run in degraded mode, but the collision is always surfaced to the caller,
// never silently resolved.
type DuplicateModuleError struct {
	Name            string
	FirstSource     string
	DuplicateSource string
}

// Error implements the error interface for DuplicateModuleError.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("duplicate module name %q: first defined in %s, redefined in %s",
		e.Name, e.FirstSource, e.DuplicateSource)
}
