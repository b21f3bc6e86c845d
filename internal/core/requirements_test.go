package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func TestParseRequirementsPinnedList(t *testing.T) {
	raw := "requests==2.28.0\n" +
		"# full line comment\n" +
		"flask>=2.0  # inline comment\n" +
		"\n" +
		"numpy~=1.24.0\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 3)
	require.Empty(t, result.Anomalies)

	want := types.Declaration{
		Name:       "requests",
		RawName:    "requests",
		Constraint: types.Constraint{Raw: "==2.28.0", Op: types.ConstraintOpEq2, Version: "2.28.0", Parsed: true},
		Scope:      types.ScopeRuntime,
		Source:     "requirements.txt",
		Direct:     true,
	}
	if diff := cmp.Diff(want, result.Declarations[0]); diff != "" {
		t.Fatalf("unexpected declaration (-want +got):\n%s", diff)
	}
	require.Equal(t, "flask", result.Declarations[1].Name)
	require.Equal(t, ">=2.0", result.Declarations[1].Constraint.Raw)
	require.Equal(t, "numpy", result.Declarations[2].Name)
}

func TestParseRequirementsMalformedLineDegrades(t *testing.T) {
	raw := "requests==2.28.0\n" +
		"# comment\n" +
		"foo==bad-version-string\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 2)

	degraded := result.Declarations[1]
	require.Equal(t, "foo", degraded.Name)
	require.False(t, degraded.Constraint.Parsed)
	require.Equal(t, "==bad-version-string", degraded.Constraint.Raw)

	require.Len(t, result.Anomalies, 1)
	anomaly := result.Anomalies[0]
	require.Equal(t, "requirements.txt", anomaly.Source)
	require.Equal(t, 3, anomaly.Line)
	require.Contains(t, anomaly.Note, "preserved verbatim")
}

func TestParseRequirementsLineContinuation(t *testing.T) {
	raw := "requests \\\n    >=2.28,\\\n    <3.0\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "requests", result.Declarations[0].Name)
	require.True(t, result.Declarations[0].Constraint.Parsed)
}

func TestParseRequirementsSkipsPipOptions(t *testing.T) {
	raw := "-r base.txt\n" +
		"--index-url https://pypi.example.invalid/simple\n" +
		"-e .\n" +
		"click==8.1.3\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "click", result.Declarations[0].Name)
}

func TestParseRequirementsExtrasAndMarkers(t *testing.T) {
	raw := "requests[security,socks]>=2.28 ; python_version >= '3.8'\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)

	decl := result.Declarations[0]
	require.Equal(t, "requests", decl.Name)
	require.Equal(t, []string{"security", "socks"}, decl.Extras)
	require.Equal(t, ">=2.28", decl.Constraint.Raw)
}

func TestParseRequirementsNameNormalization(t *testing.T) {
	raw := "Django_Rest.Framework==3.14.0\n"

	result, err := ParseManifest(types.DialectRequirements, raw, "requirements.txt")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "django-rest-framework", result.Declarations[0].Name)
	require.Equal(t, "Django_Rest.Framework", result.Declarations[0].RawName)
}

func TestScopeForRequirementsFile(t *testing.T) {
	tests := []struct {
		source string
		scope  types.DepScope
	}{
		{"requirements.txt", types.ScopeRuntime},
		{"requirements-dev.txt", types.ScopeDev},
		{"dev-requirements.txt", types.ScopeDev},
		{"test-requirements.txt", types.ScopeDev},
		{"docs/requirements-docs.txt", types.ScopeDev},
		{"sub/project/requirements.txt", types.ScopeRuntime},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.scope, scopeForRequirementsFile(tt.source)); diff != "" {
			t.Fatalf("unexpected scope for %q (-want +got):\n%s", tt.source, diff)
		}
	}
}
