package types

// ResolvedLicense is the outcome of looking up one declaration through the
// source chain. Invariant: Category is LicenseUnknown exactly when
// Confidence is ConfidenceNone.
type ResolvedLicense struct {
	Declaration Declaration
	Raw         string
	Category    LicenseCategory
	Confidence  Confidence
	SourceName  string
}

// Verdict attaches the policy decision to a resolved license. Reason names
// the policy rule that fired, for audit output.
type Verdict struct {
	License  ResolvedLicense
	Decision Decision
	Reason   string
}
