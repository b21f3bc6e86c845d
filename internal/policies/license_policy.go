package policies

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-audit/internal/types"
)

// LicensePolicy is a compiled risk policy. Classify is a pure function of
// the resolved category and this policy, so re-running a report with the
// same policy always reproduces the same verdicts.
type LicensePolicy struct {
	blocked        map[types.LicenseCategory]struct{}
	flagged        map[types.LicenseCategory]struct{}
	treatUnknownAs types.Decision
	dualLicenses   types.DualLicenseRule
}

// DefaultPolicy blocks proprietary licenses, flags copyleft, and flags
// unknowns. Silently allowing unverifiable licenses is the usual
// compliance failure, so unknown never defaults to allowed.
func DefaultPolicy() LicensePolicy {
	return LicensePolicy{
		blocked: map[types.LicenseCategory]struct{}{
			types.LicenseProprietary: {},
		},
		flagged: map[types.LicenseCategory]struct{}{
			types.LicenseWeakCopyleft:   {},
			types.LicenseStrongCopyleft: {},
		},
		treatUnknownAs: types.DecisionFlagged,
		dualLicenses:   types.DualLicenseMostRestrictive,
	}
}

// CompilePolicy validates a policy file and builds the lookup sets.
func CompilePolicy(ctx context.Context, file types.PolicyFile) (LicensePolicy, error) {
	assert.NotEmpty(ctx, file.APIVersion, "api_version must be set")

	policy := LicensePolicy{
		blocked:        map[types.LicenseCategory]struct{}{},
		flagged:        map[types.LicenseCategory]struct{}{},
		treatUnknownAs: types.DecisionFlagged,
		dualLicenses:   types.DualLicenseMostRestrictive,
	}
	for _, token := range file.Blocked {
		category, ok := types.ParseLicenseCategory(token)
		if !ok {
			return LicensePolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown license category in blocked list: %s", token))
		}
		policy.blocked[category] = struct{}{}
	}
	for _, token := range file.Flagged {
		category, ok := types.ParseLicenseCategory(token)
		if !ok {
			return LicensePolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown license category in flagged list: %s", token))
		}
		policy.flagged[category] = struct{}{}
	}
	if file.TreatUnknownAs != "" {
		decision, ok := types.ParseDecision(file.TreatUnknownAs)
		if !ok || decision == types.DecisionUnknown {
			return LicensePolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("treat_unknown_as must be allowed, flagged, or blocked: %s", file.TreatUnknownAs))
		}
		policy.treatUnknownAs = decision
	}
	switch types.DualLicenseRule(file.DualLicenses) {
	case "":
	case types.DualLicenseMostRestrictive, types.DualLicenseLeastRestrictive:
		policy.dualLicenses = types.DualLicenseRule(file.DualLicenses)
	default:
		return LicensePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dual_licenses must be most-restrictive or least-restrictive: %s", file.DualLicenses))
	}
	return policy, nil
}

// DualLicenseRule exposes the normalizer rule carried by this policy.
func (p LicensePolicy) DualLicenseRule() types.DualLicenseRule {
	return p.dualLicenses
}

// Classify decides the verdict for one resolved license. Rule priority:
// blocked list, flagged list, unknown handling, then allowed.
func (p LicensePolicy) Classify(resolved types.ResolvedLicense) types.Verdict {
	if _, ok := p.blocked[resolved.Category]; ok {
		return types.Verdict{
			License:  resolved,
			Decision: types.DecisionBlocked,
			Reason:   fmt.Sprintf("category %s is in the blocked list", resolved.Category),
		}
	}
	if _, ok := p.flagged[resolved.Category]; ok {
		return types.Verdict{
			License:  resolved,
			Decision: types.DecisionFlagged,
			Reason:   fmt.Sprintf("category %s is in the flagged list", resolved.Category),
		}
	}
	if resolved.Category == types.LicenseUnknown {
		return types.Verdict{
			License:  resolved,
			Decision: p.treatUnknownAs,
			Reason:   fmt.Sprintf("license could not be resolved; unknowns are treated as %s", p.treatUnknownAs),
		}
	}
	return types.Verdict{
		License:  resolved,
		Decision: types.DecisionAllowed,
		Reason:   "no policy rule matched",
	}
}
