package ports

import "license-audit/internal/types"

// ManifestLocatorPort discovers dependency manifests under a project root
// and hands their raw text to the pipeline.
type ManifestLocatorPort interface {
	// Discover walks the root and returns manifests in a stable order.
	Discover(root string) ([]types.ManifestRef, error)

	// Read returns the raw text of one discovered manifest.
	Read(path string) (string, error)
}
