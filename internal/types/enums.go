package types

// Dialect identifies a supported manifest syntax.
type Dialect string

const (
	DialectRequirements Dialect = "requirements"
	DialectPyproject    Dialect = "pyproject"
	DialectPoetryLock   Dialect = "poetry-lock"
	DialectSetupScript  Dialect = "setup-script"
)

// DepScope describes which lifecycle phase declared the dependency.
type DepScope string

const (
	ScopeRuntime  DepScope = "runtime"
	ScopeDev      DepScope = "dev"
	ScopeOptional DepScope = "optional"
	ScopeBuild    DepScope = "build"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "="
	ConstraintOpEq2    ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)

// LicenseCategory is the closed taxonomy every license resolves into.
type LicenseCategory string

const (
	LicensePublicDomain   LicenseCategory = "public-domain"
	LicensePermissive     LicenseCategory = "permissive"
	LicenseWeakCopyleft   LicenseCategory = "weak-copyleft"
	LicenseStrongCopyleft LicenseCategory = "strong-copyleft"
	LicenseProprietary    LicenseCategory = "proprietary"
	LicenseUnknown        LicenseCategory = "unknown"
)

// Restrictiveness ranks categories for worst-case merging. Unknown ranks
// below everything so a recognized license always wins a merge.
func (c LicenseCategory) Restrictiveness() int {
	switch c {
	case LicensePublicDomain:
		return 1
	case LicensePermissive:
		return 2
	case LicenseWeakCopyleft:
		return 3
	case LicenseStrongCopyleft:
		return 4
	case LicenseProprietary:
		return 5
	default:
		return 0
	}
}

// ParseLicenseCategory maps a config-file token to a category.
func ParseLicenseCategory(value string) (LicenseCategory, bool) {
	switch LicenseCategory(value) {
	case LicensePublicDomain, LicensePermissive, LicenseWeakCopyleft,
		LicenseStrongCopyleft, LicenseProprietary, LicenseUnknown:
		return LicenseCategory(value), true
	default:
		return "", false
	}
}

// Confidence records how a license string was matched during normalization.
type Confidence string

const (
	ConfidenceExact   Confidence = "exact"
	ConfidenceAliased Confidence = "aliased"
	ConfidencePattern Confidence = "pattern"
	ConfidenceNone    Confidence = "none"
)

// Decision is the policy outcome for a resolved dependency.
type Decision string

const (
	DecisionAllowed Decision = "allowed"
	DecisionFlagged Decision = "flagged"
	DecisionBlocked Decision = "blocked"
	DecisionUnknown Decision = "unknown"
)

// Severity ranks decisions for worst-case merging across manifests.
func (d Decision) Severity() int {
	switch d {
	case DecisionBlocked:
		return 3
	case DecisionFlagged:
		return 2
	case DecisionUnknown:
		return 1
	default:
		return 0
	}
}

// ParseDecision maps a config-file token to a decision.
func ParseDecision(value string) (Decision, bool) {
	switch Decision(value) {
	case DecisionAllowed, DecisionFlagged, DecisionBlocked, DecisionUnknown:
		return Decision(value), true
	default:
		return "", false
	}
}

// DualLicenseRule selects which side of a multi-license expression wins.
type DualLicenseRule string

const (
	DualLicenseMostRestrictive  DualLicenseRule = "most-restrictive"
	DualLicenseLeastRestrictive DualLicenseRule = "least-restrictive"
)
