package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// pyprojectFile models the subset of pyproject.toml this tool reads: the
// PEP 621 [project] table and the Poetry tables that predate it.
type pyprojectFile struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name            string                 `toml:"name"`
			Dependencies    map[string]interface{} `toml:"dependencies"`
			DevDependencies map[string]interface{} `toml:"dev-dependencies"`
			Group           map[string]poetryGroup `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type poetryGroup struct {
	Dependencies map[string]interface{} `toml:"dependencies"`
}

// parsePyproject parses project-metadata tables. Invalid TOML fails the
// whole manifest with the decoder's line offset when available; individual
// unusable entries degrade to anomalies.
func parsePyproject(raw string, source string) (ParseResult, error) {
	var file pyprojectFile
	if err := toml.Unmarshal([]byte(raw), &file); err != nil {
		line := 0
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, _ = decodeErr.Position()
		}
		return ParseResult{}, &ManifestParseError{Source: source, Line: line, Err: err}
	}

	result := ParseResult{}
	for _, spec := range file.Project.Dependencies {
		appendRequirement(&result, spec, source, types.ScopeRuntime)
	}
	for _, group := range sortedKeys(file.Project.OptionalDependencies) {
		scope := optionalGroupScope(group)
		for _, spec := range file.Project.OptionalDependencies[group] {
			appendRequirement(&result, spec, source, scope)
		}
	}

	poetry := file.Tool.Poetry
	appendPoetryTable(&result, poetry.Dependencies, source, types.ScopeRuntime)
	appendPoetryTable(&result, poetry.DevDependencies, source, types.ScopeDev)
	for _, group := range sortedKeys(poetry.Group) {
		appendPoetryTable(&result, poetry.Group[group].Dependencies, source, optionalGroupScope(group))
	}
	return result, nil
}

func appendRequirement(result *ParseResult, spec string, source string, scope types.DepScope) {
	decl, ok := declarationFromRequirement(spec, source, scope, true)
	if !ok {
		result.Anomalies = append(result.Anomalies, types.LineAnomaly{
			Source: source,
			Text:   spec,
			Note:   "no package name could be extracted",
		})
		return
	}
	if !decl.Constraint.Parsed {
		result.Anomalies = append(result.Anomalies, types.LineAnomaly{
			Source: source,
			Text:   spec,
			Note:   "constraint preserved verbatim: " + decl.Constraint.Raw,
		})
	}
	result.Declarations = append(result.Declarations, decl)
}

func appendPoetryTable(result *ParseResult, deps map[string]interface{}, source string, scope types.DepScope) {
	for _, name := range sortedKeys(deps) {
		// The interpreter constraint is not a package dependency.
		if shared.NormalizeName(name) == "python" {
			continue
		}
		raw := poetryConstraint(deps[name])
		decl := types.Declaration{
			Name:       shared.NormalizeName(name),
			RawName:    name,
			Constraint: ParseConstraint(raw),
			Scope:      scope,
			Source:     source,
			Direct:     true,
		}
		if !decl.Constraint.Parsed {
			result.Anomalies = append(result.Anomalies, types.LineAnomaly{
				Source: source,
				Text:   fmt.Sprintf("%s = %q", name, raw),
				Note:   "constraint preserved verbatim: " + raw,
			})
		}
		result.Declarations = append(result.Declarations, decl)
	}
}

// poetryConstraint extracts the constraint text from a Poetry dependency
// value, which is either a bare string or an inline table with a version
// key. Poetry's "*" wildcard means unconstrained.
func poetryConstraint(value interface{}) string {
	switch v := value.(type) {
	case string:
		if v == "*" {
			return ""
		}
		return v
	case map[string]interface{}:
		if version, ok := v["version"].(string); ok && version != "*" {
			return version
		}
		return ""
	default:
		return ""
	}
}

func optionalGroupScope(group string) types.DepScope {
	switch shared.NormalizeName(group) {
	case "dev", "test", "tests", "docs", "doc":
		return types.ScopeDev
	default:
		return types.ScopeOptional
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
