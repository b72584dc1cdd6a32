package sentinel

import "errors"

// Sentinel errors for storage facts. History stores return these (optionally
// wrapped) and the diagnosis service turns them into domain errors:
// - ErrNotFound: no entry with the requested ID
// - ErrUnavailable: the backing store could not be reached
//
// Validation problems belong in pkg/domain-errors, not here.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
