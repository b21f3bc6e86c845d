package core

import (
	"fmt"
	"regexp"
	"strings"

	"license-audit/internal/types"
)

var (
	setupCallRe      = regexp.MustCompile(`(?m)\bsetup\s*\(`)
	installRequires  = regexp.MustCompile(`(?s)install_requires\s*=\s*\[(.*?)\]`)
	extrasRequire    = regexp.MustCompile(`(?s)extras_require\s*=\s*\{(.*?)\}`)
	quotedStringRe   = regexp.MustCompile(`["']([^"']+)["']`)
	extrasGroupKeyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// parseSetupScript extracts dependencies from legacy setup.py files by
// matching the install_requires and extras_require literals. This is a
// textual extraction, not a Python evaluation: dynamically computed
// dependency lists are invisible to it. A script without a setup() call
// fails the whole manifest.
func parseSetupScript(raw string, source string) (ParseResult, error) {
	if !setupCallRe.MatchString(raw) {
		return ParseResult{}, &ManifestParseError{
			Source: source,
			Err:    fmt.Errorf("no setup() call found"),
		}
	}

	result := ParseResult{}
	if match := installRequires.FindStringSubmatch(raw); match != nil {
		for _, quoted := range quotedStringRe.FindAllStringSubmatch(match[1], -1) {
			appendRequirement(&result, quoted[1], source, types.ScopeRuntime)
		}
	}
	if match := extrasRequire.FindStringSubmatch(raw); match != nil {
		for _, quoted := range quotedStringRe.FindAllStringSubmatch(match[1], -1) {
			spec := quoted[1]
			// Dict keys are the extras group names, not requirements.
			if extrasGroupKeyRe.MatchString(spec) && !strings.ContainsAny(spec, "<>=!~") {
				continue
			}
			appendRequirement(&result, spec, source, types.ScopeOptional)
		}
	}
	return result, nil
}
