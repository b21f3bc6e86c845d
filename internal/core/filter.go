package core

import (
	"regexp"
	"strings"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// FilterOptions select which declarations take part in a run. RuntimeOnly
// produces the distribution-compliance view: dev and optional scopes drop
// out along with build tooling, test frameworks, and type-stub packages
// that are never shipped.
type FilterOptions struct {
	IncludeDev      bool
	IncludeOptional bool
	RuntimeOnly     bool
	ExcludePatterns []string
}

// buildTimePackages are tools that install or develop a project but are
// not distributed with it.
var buildTimePackages = map[string]struct{}{
	"pip": {}, "setuptools": {}, "wheel": {}, "build": {}, "twine": {},
	"virtualenv": {}, "venv": {}, "pyinstaller": {}, "pytest": {},
	"mypy": {}, "black": {}, "flake8": {}, "isort": {}, "coverage": {},
	"tox": {}, "pre-commit": {}, "sphinx": {}, "mkdocs": {}, "jupyter": {},
	"notebook": {}, "ipython": {}, "ipykernel": {}, "conda": {},
	"poetry": {}, "pipenv": {}, "flit": {}, "hatch": {}, "pdm": {},
	"bandit": {}, "safety": {}, "autopep8": {}, "yapf": {}, "pylint": {},
	"pydocstyle": {}, "pycodestyle": {}, "pyflakes": {}, "mccabe": {},
}

var testPackages = map[string]struct{}{
	"pytest": {}, "unittest2": {}, "nose": {}, "nose2": {}, "testtools": {},
	"mock": {}, "pytest-cov": {}, "pytest-xdist": {}, "pytest-mock": {},
	"factory-boy": {}, "faker": {}, "hypothesis": {}, "codecov": {},
}

var typeStubPrefixes = []string{"types-", "stub-"}

var typeStubPackages = map[string]struct{}{
	"typing-extensions": {}, "mypy-extensions": {},
}

// FilterDeclarations applies scope and exclusion rules, preserving input
// order. Patterns use shell-style wildcards matched case-insensitively
// against normalized names.
func FilterDeclarations(decls []types.Declaration, opts FilterOptions) []types.Declaration {
	matchers := compilePatterns(opts.ExcludePatterns)
	var kept []types.Declaration
	for _, decl := range decls {
		if excluded(decl.Name, matchers) {
			continue
		}
		if opts.RuntimeOnly {
			if decl.Scope != types.ScopeRuntime || isBundlingIrrelevant(decl.Name) {
				continue
			}
		} else {
			if decl.Scope == types.ScopeDev && !opts.IncludeDev {
				continue
			}
			if decl.Scope == types.ScopeOptional && !opts.IncludeOptional {
				continue
			}
		}
		kept = append(kept, decl)
	}
	return kept
}

func isBundlingIrrelevant(name string) bool {
	if _, ok := buildTimePackages[name]; ok {
		return true
	}
	if _, ok := testPackages[name]; ok {
		return true
	}
	if _, ok := typeStubPackages[name]; ok {
		return true
	}
	for _, prefix := range typeStubPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	var matchers []*regexp.Regexp
	for _, pattern := range patterns {
		pattern = shared.NormalizeName(pattern)
		if pattern == "" {
			continue
		}
		expr := "^" + strings.ReplaceAll(strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*"), `\?`, ".") + "$"
		re, err := regexp.Compile(expr)
		if err != nil {
			continue
		}
		matchers = append(matchers, re)
	}
	return matchers
}

func excluded(name string, matchers []*regexp.Regexp) bool {
	for _, matcher := range matchers {
		if matcher.MatchString(name) {
			return true
		}
	}
	return false
}
