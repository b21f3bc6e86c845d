package ports

import "license-audit/internal/types"

// PolicySourcePort loads a risk policy definition from configuration.
type PolicySourcePort interface {
	LoadPolicy(path string) (types.PolicyFile, error)
}
