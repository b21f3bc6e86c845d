package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// Resolver produces a ResolvedLicense for each declaration by querying an
// ordered chain of lookup sources. The first source that answers wins and
// its name is recorded as provenance; results from different sources are
// never merged. The resolver does no I/O of its own; every source is an
// injected capability the caller assembled.
type Resolver struct {
	normalizer *Normalizer
	chain      []ports.LicenseSourcePort
}

func NewResolver(normalizer *Normalizer, chain []ports.LicenseSourcePort) Resolver {
	return Resolver{normalizer: normalizer, chain: chain}
}

// Resolve walks the chain for one declaration. A miss from every source is
// a normal outcome, not an error: the result carries LicenseUnknown with
// ConfidenceNone and policy decides what that means.
func (r Resolver) Resolve(ctx context.Context, decl types.Declaration) (types.ResolvedLicense, error) {
	version := ""
	if decl.Constraint.Op == types.ConstraintOpEq || decl.Constraint.Op == types.ConstraintOpEq2 {
		version = decl.Constraint.Version
	}
	for _, source := range r.chain {
		raw, found, err := source.Lookup(ctx, decl.Name, version)
		if err != nil {
			return types.ResolvedLicense{}, err
		}
		if !found {
			continue
		}
		category, confidence := r.normalizer.Normalize(raw)
		log.Debug().
			Str("package", decl.Name).
			Str("source", source.Name()).
			Str("category", string(category)).
			Msg("license resolved")
		return types.ResolvedLicense{
			Declaration: decl,
			Raw:         raw,
			Category:    category,
			Confidence:  confidence,
			SourceName:  source.Name(),
		}, nil
	}
	return types.ResolvedLicense{
		Declaration: decl,
		Category:    types.LicenseUnknown,
		Confidence:  types.ConfidenceNone,
	}, nil
}
