package policies

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func resolvedWithCategory(category types.LicenseCategory) types.ResolvedLicense {
	confidence := types.ConfidenceExact
	if category == types.LicenseUnknown {
		confidence = types.ConfidenceNone
	}
	return types.ResolvedLicense{
		Declaration: types.Declaration{Name: "pkg", Source: "requirements.txt"},
		Raw:         string(category),
		Category:    category,
		Confidence:  confidence,
	}
}

func TestDefaultPolicyDecisions(t *testing.T) {
	policy := DefaultPolicy()
	tests := []struct {
		category types.LicenseCategory
		decision types.Decision
	}{
		{types.LicensePublicDomain, types.DecisionAllowed},
		{types.LicensePermissive, types.DecisionAllowed},
		{types.LicenseWeakCopyleft, types.DecisionFlagged},
		{types.LicenseStrongCopyleft, types.DecisionFlagged},
		{types.LicenseProprietary, types.DecisionBlocked},
		{types.LicenseUnknown, types.DecisionFlagged},
	}
	for _, tt := range tests {
		verdict := policy.Classify(resolvedWithCategory(tt.category))
		require.Equal(t, tt.decision, verdict.Decision, "category %s", tt.category)
		require.NotEmpty(t, verdict.Reason)
	}
}

func TestClassifyIsPure(t *testing.T) {
	policy := DefaultPolicy()
	resolved := resolvedWithCategory(types.LicenseStrongCopyleft)

	first := policy.Classify(resolved)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, policy.Classify(resolved))
	}
}

func TestCompilePolicy(t *testing.T) {
	policy, err := CompilePolicy(context.Background(), types.PolicyFile{
		APIVersion:     "v1",
		Blocked:        []string{"strong-copyleft", "proprietary"},
		Flagged:        []string{"weak-copyleft"},
		TreatUnknownAs: "blocked",
		DualLicenses:   "least-restrictive",
	})
	require.NoError(t, err)

	require.Equal(t, types.DecisionBlocked, policy.Classify(resolvedWithCategory(types.LicenseStrongCopyleft)).Decision)
	require.Equal(t, types.DecisionFlagged, policy.Classify(resolvedWithCategory(types.LicenseWeakCopyleft)).Decision)
	unknown := policy.Classify(resolvedWithCategory(types.LicenseUnknown))
	require.Equal(t, types.DecisionBlocked, unknown.Decision)
	require.Contains(t, unknown.Reason, "unknowns are treated as blocked")

	require.Equal(t, types.DecisionAllowed, policy.Classify(resolvedWithCategory(types.LicensePermissive)).Decision)
	require.Equal(t, types.DualLicenseLeastRestrictive, policy.DualLicenseRule())
}

func TestCompilePolicyRejectsUnknownCategory(t *testing.T) {
	_, err := CompilePolicy(context.Background(), types.PolicyFile{
		APIVersion: "v1",
		Blocked:    []string{"viral"},
	})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestCompilePolicyRejectsBadUnknownHandling(t *testing.T) {
	for _, token := range []string{"unknown", "whatever"} {
		_, err := CompilePolicy(context.Background(), types.PolicyFile{
			APIVersion:     "v1",
			TreatUnknownAs: token,
		})
		require.Error(t, err, "token %q", token)
		require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestCompilePolicyRejectsBadDualLicenseRule(t *testing.T) {
	_, err := CompilePolicy(context.Background(), types.PolicyFile{
		APIVersion:   "v1",
		DualLicenses: "coin-flip",
	})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTreatUnknownAsOnlyAffectsUnknowns(t *testing.T) {
	policy, err := CompilePolicy(context.Background(), types.PolicyFile{
		APIVersion:     "v1",
		Blocked:        []string{"proprietary"},
		TreatUnknownAs: "allowed",
	})
	require.NoError(t, err)

	require.Equal(t, types.DecisionAllowed, policy.Classify(resolvedWithCategory(types.LicenseUnknown)).Decision)
	require.Equal(t, types.DecisionBlocked, policy.Classify(resolvedWithCategory(types.LicenseProprietary)).Decision)
}
