package core

import (
	"errors"

	"github.com/pelletier/go-toml/v2"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// poetryLockFile models the [[package]] entries of a poetry.lock file.
type poetryLockFile struct {
	Packages []poetryLockPackage `toml:"package"`
}

type poetryLockPackage struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Category string   `toml:"category"`
	Optional bool     `toml:"optional"`
	Groups   []string `toml:"groups"`
}

// parsePoetryLock parses lockfiles. Lockfile entries are pinned and
// include the transitive closure, so declarations carry Direct=false.
// Entries without a name degrade to anomalies; invalid TOML fails the
// manifest.
func parsePoetryLock(raw string, source string) (ParseResult, error) {
	var file poetryLockFile
	if err := toml.Unmarshal([]byte(raw), &file); err != nil {
		line := 0
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, _ = decodeErr.Position()
		}
		return ParseResult{}, &ManifestParseError{Source: source, Line: line, Err: err}
	}

	result := ParseResult{}
	for _, pkg := range file.Packages {
		if shared.NormalizeName(pkg.Name) == "" {
			result.Anomalies = append(result.Anomalies, types.LineAnomaly{
				Source: source,
				Text:   pkg.Version,
				Note:   "lock entry without a package name",
			})
			continue
		}
		constraint := types.Constraint{Parsed: true}
		if pkg.Version != "" {
			constraint = ParseConstraint("==" + pkg.Version)
		}
		result.Declarations = append(result.Declarations, types.Declaration{
			Name:       shared.NormalizeName(pkg.Name),
			RawName:    pkg.Name,
			Constraint: constraint,
			Scope:      poetryLockScope(pkg),
			Source:     source,
			Direct:     false,
		})
	}
	return result, nil
}

func poetryLockScope(pkg poetryLockPackage) types.DepScope {
	if pkg.Optional {
		return types.ScopeOptional
	}
	for _, group := range pkg.Groups {
		if optionalGroupScope(group) == types.ScopeDev {
			return types.ScopeDev
		}
	}
	if pkg.Category != "" && optionalGroupScope(pkg.Category) == types.ScopeDev {
		return types.ScopeDev
	}
	return types.ScopeRuntime
}
