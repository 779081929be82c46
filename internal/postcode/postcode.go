// Package postcode defines the external postcode-validity collaborator
// consumed by rule validation. Failure to confirm a postcode is never
// fatal to the pipeline; callers degrade it to a warning.
package postcode

import "context"

// Lookup is the boundary contract for the postcode-validity service.
type Lookup interface {
	// Exists reports whether the postcode is a real, deliverable UK
	// postcode. An error means the lookup could not be performed, not
	// that the postcode is invalid.
	Exists(ctx context.Context, postcode string) (bool, error)
}
