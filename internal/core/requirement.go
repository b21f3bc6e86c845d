package core

import (
	"strings"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// requirementParts are the syntactic pieces of a PEP 508-style requirement
// string such as "requests[security,socks]>=2.28 ; python_version>='3.8'".
type requirementParts struct {
	rawName    string
	extras     []string
	constraint string
}

// splitRequirement breaks a requirement string into name, extras, and
// constraint. Environment markers after ";" are dropped. Returns false
// when no package name can be extracted.
func splitRequirement(raw string) (requirementParts, bool) {
	text := strings.TrimSpace(raw)
	if idx := strings.Index(text, ";"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	if text == "" {
		return requirementParts{}, false
	}

	end := 0
	for end < len(text) && isNameByte(text[end]) {
		end++
	}
	if end == 0 {
		return requirementParts{}, false
	}
	parts := requirementParts{rawName: text[:end]}
	rest := strings.TrimSpace(text[end:])

	if strings.HasPrefix(rest, "[") {
		closing := strings.Index(rest, "]")
		if closing < 0 {
			// Unterminated extras bracket: keep the remainder as the
			// constraint so the declaration degrades instead of dropping.
			parts.constraint = rest
			return parts, true
		}
		for _, extra := range strings.Split(rest[1:closing], ",") {
			extra = shared.NormalizeName(extra)
			if extra != "" {
				parts.extras = append(parts.extras, extra)
			}
		}
		rest = strings.TrimSpace(rest[closing+1:])
	}
	parts.constraint = rest
	return parts, true
}

// declarationFromRequirement builds a canonical declaration from one
// requirement string. Returns false when the string holds no usable name.
func declarationFromRequirement(raw string, source string, scope types.DepScope, direct bool) (types.Declaration, bool) {
	parts, ok := splitRequirement(raw)
	if !ok {
		return types.Declaration{}, false
	}
	return types.Declaration{
		Name:       shared.NormalizeName(parts.rawName),
		RawName:    parts.rawName,
		Constraint: ParseConstraint(parts.constraint),
		Extras:     parts.extras,
		Scope:      scope,
		Source:     source,
		Direct:     direct,
	}, true
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.':
		return true
	default:
		return false
	}
}
