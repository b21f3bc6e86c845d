package types

// Constraint is a version constraint attached to a declaration. Raw always
// preserves the original text; Op and Version are only set when the
// constraint is a single recognizable operator with a valid PEP 440
// version. Compound specifier sets (">=1.0,<2.0") keep Parsed=true with
// ConstraintOpNone. Constraints that cannot be parsed at all keep their
// verbatim text with Parsed=false instead of being discarded.
type Constraint struct {
	Raw     string
	Op      ConstraintOp
	Version string
	Parsed  bool
}

// Reconciled returns the identity component used for deduplication: the
// pinned version when the constraint is an exact pin, otherwise the raw
// constraint text.
func (c Constraint) Reconciled() string {
	if c.Parsed && (c.Op == ConstraintOpEq || c.Op == ConstraintOpEq2) {
		return c.Version
	}
	return c.Raw
}

// Declaration is one dependency extracted from a manifest, normalized into
// the canonical model shared by every dialect parser. Name is never empty
// and is PEP 503 normalized (lowercase, "_" "." folded to "-").
type Declaration struct {
	Name       string
	RawName    string
	Constraint Constraint
	Extras     []string
	Scope      DepScope
	Source     string
	Direct     bool
}

// ManifestRef points at a discovered manifest file and its dialect.
type ManifestRef struct {
	Path    string
	Dialect Dialect
}
