package core

import (
	"path/filepath"
	"strings"

	"license-audit/internal/types"
)

// parseRequirements parses pinned requirement lists (requirements.txt and
// variants). Comments, blank lines, and pip options are tolerated; line
// continuations are joined before parsing. A malformed line degrades to a
// declaration with an unparsed-raw constraint, or to an anomaly when not
// even a name can be extracted. Whole-file failure does not exist for this
// dialect: any text is line-recoverable.
func parseRequirements(raw string, source string) ParseResult {
	scope := scopeForRequirementsFile(source)
	result := ParseResult{}

	lines := strings.Split(raw, "\n")
	lineNo := 0
	for i := 0; i < len(lines); i++ {
		lineNo = i + 1
		line := strings.TrimSpace(lines[i])

		// Join backslash continuations into one logical line.
		for strings.HasSuffix(line, "\\") && i+1 < len(lines) {
			i++
			line = strings.TrimSpace(strings.TrimSuffix(line, "\\")) + " " + strings.TrimSpace(lines[i])
			line = strings.TrimSpace(line)
		}

		line = stripInlineComment(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Pip options: -r includes, -e editable installs, --index-url etc.
		if strings.HasPrefix(line, "-") {
			continue
		}

		decl, ok := declarationFromRequirement(line, source, scope, true)
		if !ok {
			result.Anomalies = append(result.Anomalies, types.LineAnomaly{
				Source: source,
				Line:   lineNo,
				Text:   line,
				Note:   "no package name could be extracted",
			})
			continue
		}
		if !decl.Constraint.Parsed {
			result.Anomalies = append(result.Anomalies, types.LineAnomaly{
				Source: source,
				Line:   lineNo,
				Text:   line,
				Note:   "constraint preserved verbatim: " + decl.Constraint.Raw,
			})
		}
		result.Declarations = append(result.Declarations, decl)
	}
	return result
}

// stripInlineComment removes a trailing " # ..." comment. A leading "#"
// is left alone so fully commented lines are skipped by the caller.
func stripInlineComment(line string) string {
	if idx := strings.Index(line, " #"); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return line
}

// scopeForRequirementsFile infers the dependency scope from the filename,
// e.g. requirements-dev.txt or test-requirements.txt declare dev scope.
func scopeForRequirementsFile(source string) types.DepScope {
	base := strings.ToLower(filepath.Base(source))
	for _, keyword := range []string{"dev", "test", "doc"} {
		if strings.Contains(base, keyword) {
			return types.ScopeDev
		}
	}
	return types.ScopeRuntime
}
