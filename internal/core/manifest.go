package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"license-audit/internal/types"
)

// ParseResult is the outcome of parsing one manifest: the declarations
// that were extracted plus any per-line anomalies that were recovered
// instead of aborting the file.
type ParseResult struct {
	Declarations []types.Declaration
	Anomalies    []types.LineAnomaly
}

// ManifestParseError reports a manifest whose overall structure is
// unreadable. It is fatal to that manifest only; callers skip the file and
// continue with the rest of the run. Line is zero when no offset is known.
type ManifestParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ManifestParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("manifest %s: %v", e.Source, e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// ParseManifest dispatches raw manifest text to the parser for its
// dialect. The dialect set is closed; each parser is a pure function from
// text to declarations.
func ParseManifest(dialect types.Dialect, raw string, source string) (ParseResult, error) {
	switch dialect {
	case types.DialectRequirements:
		return parseRequirements(raw, source), nil
	case types.DialectPyproject:
		return parsePyproject(raw, source)
	case types.DialectPoetryLock:
		return parsePoetryLock(raw, source)
	case types.DialectSetupScript:
		return parseSetupScript(raw, source)
	default:
		return ParseResult{}, &ManifestParseError{
			Source: source,
			Err:    fmt.Errorf("unsupported manifest dialect: %s", dialect),
		}
	}
}

// DetectDialect maps a manifest filename to its dialect.
func DetectDialect(path string) (types.Dialect, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case base == "pyproject.toml":
		return types.DialectPyproject, true
	case base == "poetry.lock":
		return types.DialectPoetryLock, true
	case base == "setup.py":
		return types.DialectSetupScript, true
	case strings.HasSuffix(base, ".txt") && strings.Contains(base, "requirements"):
		return types.DialectRequirements, true
	default:
		return "", false
	}
}
