package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func TestParsePoetryLock(t *testing.T) {
	raw := `
[[package]]
name = "requests"
version = "2.28.0"
category = "main"
optional = false

[[package]]
name = "pytest"
version = "7.4.0"
category = "dev"
optional = false

[[package]]
name = "rich"
version = "13.4.2"
category = "main"
optional = true

[[package]]
name = "charset-normalizer"
version = "3.1.0"
groups = ["main"]
`
	result, err := ParseManifest(types.DialectPoetryLock, raw, "poetry.lock")
	require.NoError(t, err)
	require.Empty(t, result.Anomalies)
	require.Len(t, result.Declarations, 4)

	requests := result.Declarations[0]
	require.Equal(t, "requests", requests.Name)
	require.False(t, requests.Direct, "lockfile entries include the transitive closure")
	require.Equal(t, types.ConstraintOpEq2, requests.Constraint.Op)
	require.Equal(t, "2.28.0", requests.Constraint.Version)
	require.Equal(t, "2.28.0", requests.Constraint.Reconciled())
	require.Equal(t, types.ScopeRuntime, requests.Scope)

	require.Equal(t, types.ScopeDev, result.Declarations[1].Scope)
	require.Equal(t, types.ScopeOptional, result.Declarations[2].Scope)
	require.Equal(t, types.ScopeRuntime, result.Declarations[3].Scope)
}

func TestParsePoetryLockGroupsSyntax(t *testing.T) {
	// Poetry 1.5+ writes groups instead of category.
	raw := `
[[package]]
name = "mypy"
version = "1.4.1"
groups = ["dev"]
`
	result, err := ParseManifest(types.DialectPoetryLock, raw, "poetry.lock")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	require.Equal(t, types.ScopeDev, result.Declarations[0].Scope)
}

func TestParsePoetryLockEntryWithoutName(t *testing.T) {
	raw := `
[[package]]
version = "1.0.0"

[[package]]
name = "click"
version = "8.1.3"
`
	result, err := ParseManifest(types.DialectPoetryLock, raw, "poetry.lock")
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "click", result.Declarations[0].Name)
	require.Len(t, result.Anomalies, 1)
	require.Contains(t, result.Anomalies[0].Note, "without a package name")
}

func TestParsePoetryLockInvalidTOMLFailsManifest(t *testing.T) {
	_, err := ParseManifest(types.DialectPoetryLock, "[[package\nname = \"x\"\n", "poetry.lock")
	require.Error(t, err)

	var parseErr *ManifestParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "poetry.lock", parseErr.Source)
}
