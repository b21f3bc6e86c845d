package ports

import "context"

// LicenseSourcePort is one lookup capability in the resolver chain: given
// a normalized package name and an optional pinned version, return the raw
// license text or report a miss. Implementations may read local metadata,
// consult an embedded table, or front a remote index; the core does not
// care and never instantiates sources itself. A miss is (="", false, nil),
// never an error.
type LicenseSourcePort interface {
	// Name identifies the source in resolution provenance.
	Name() string

	// Lookup returns the raw license text for name at version. Version may
	// be empty when the declaration is not pinned.
	Lookup(ctx context.Context, name string, version string) (string, bool, error)
}
