package core

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"license-audit/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseConstraint turns the constraint portion of a requirement ("==2.28.0",
// ">=1.0,<2.0", "^1.2") into a Constraint. A single operator with a valid
// PEP 440 version yields a fully parsed pair; a valid compound specifier
// set stays parsed without an operator; anything else is preserved
// verbatim as unparsed-raw. The function is total: it never rejects input.
func ParseConstraint(raw string) types.Constraint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Constraint{Parsed: true}
	}
	for _, op := range opTokens {
		if !strings.HasPrefix(trimmed, string(op)) {
			continue
		}
		version := strings.TrimSpace(trimmed[len(op):])
		if version == "" || strings.Contains(version, ",") {
			break
		}
		if _, err := pep440.Parse(version); err != nil {
			break
		}
		return types.Constraint{Raw: trimmed, Op: op, Version: version, Parsed: true}
	}
	if _, err := pep440.NewSpecifiers(trimmed); err == nil {
		return types.Constraint{Raw: trimmed, Parsed: true}
	}
	return types.Constraint{Raw: trimmed, Parsed: false}
}
