package core

import (
	"regexp"
	"strings"

	"license-audit/internal/shared"
	"license-audit/internal/types"
)

// Normalizer maps arbitrary license text to the closed category taxonomy.
// Matching runs in tiers: exact canonical identifier, alias table, then
// keyword patterns over verbose text. All tables are built once at
// construction and never mutated, so Normalize is safe for concurrent use
// and deterministic for a given input.
type Normalizer struct {
	exact    map[string]types.LicenseCategory
	aliases  map[string]types.LicenseCategory
	patterns []licensePattern
	rule     types.DualLicenseRule
}

type licensePattern struct {
	re       *regexp.Regexp
	category types.LicenseCategory
}

// multi-license expressions longer than this are treated as verbose text
// and matched whole instead of being split on connectives.
const maxExpressionLength = 120

var licenseSeparators = regexp.MustCompile(`(?i)\s+(?:or|and)\s+|[/|;,]`)

// NewNormalizer builds a normalizer with the built-in canonical, alias,
// and pattern tables. The rule decides which side of a dual-license
// expression wins; compliance review wants the worst case, so
// most-restrictive is the default for an empty rule.
func NewNormalizer(rule types.DualLicenseRule) *Normalizer {
	if rule == "" {
		rule = types.DualLicenseMostRestrictive
	}
	return &Normalizer{
		exact:    canonicalLicenses,
		aliases:  licenseAliases,
		patterns: licensePatterns,
		rule:     rule,
	}
}

// Normalize classifies raw license text. Absent or unmatched input yields
// (LicenseUnknown, ConfidenceNone); that pairing is the component
// invariant relied on downstream.
func (n *Normalizer) Normalize(raw string) (types.LicenseCategory, types.Confidence) {
	text := shared.CollapseSpace(raw)
	if text == "" {
		return types.LicenseUnknown, types.ConfidenceNone
	}
	if category, confidence, ok := n.lookup(text); ok {
		return category, confidence
	}
	if len(text) <= maxExpressionLength {
		if category, confidence, ok := n.combine(splitExpression(text)); ok {
			return category, confidence
		}
	}
	return n.matchPattern(text)
}

// lookup runs the exact and alias tiers against one identifier.
func (n *Normalizer) lookup(text string) (types.LicenseCategory, types.Confidence, bool) {
	key := strings.ToLower(text)
	if category, ok := n.exact[key]; ok {
		return category, types.ConfidenceExact, true
	}
	if category, ok := n.aliases[key]; ok {
		return category, types.ConfidenceAliased, true
	}
	return "", "", false
}

// single classifies one part of an expression through all three tiers.
func (n *Normalizer) single(text string) (types.LicenseCategory, types.Confidence, bool) {
	if category, confidence, ok := n.lookup(text); ok {
		return category, confidence, true
	}
	category, confidence := n.matchPattern(text)
	if category == types.LicenseUnknown {
		return "", "", false
	}
	return category, confidence, true
}

// combine resolves a dual/multi-license expression. Unmatched parts are
// ignored; the configured rule picks among the parts that matched. The
// reported confidence is the weakest tier that contributed, since the
// result is only as trustworthy as its least certain component.
func (n *Normalizer) combine(parts []string) (types.LicenseCategory, types.Confidence, bool) {
	if len(parts) < 2 {
		return "", "", false
	}
	matched := false
	var winner types.LicenseCategory
	confidence := types.ConfidenceExact
	for _, part := range parts {
		category, partConfidence, ok := n.single(part)
		if !ok {
			continue
		}
		if !matched || n.prefer(category, winner) {
			winner = category
		}
		if confidenceRank(partConfidence) < confidenceRank(confidence) {
			confidence = partConfidence
		}
		matched = true
	}
	if !matched {
		return "", "", false
	}
	return winner, confidence, true
}

func (n *Normalizer) prefer(candidate, current types.LicenseCategory) bool {
	if n.rule == types.DualLicenseLeastRestrictive {
		return candidate.Restrictiveness() < current.Restrictiveness()
	}
	return candidate.Restrictiveness() > current.Restrictiveness()
}

func (n *Normalizer) matchPattern(text string) (types.LicenseCategory, types.Confidence) {
	upper := strings.ToUpper(text)
	for _, pattern := range n.patterns {
		if pattern.re.MatchString(upper) {
			return pattern.category, types.ConfidencePattern
		}
	}
	return types.LicenseUnknown, types.ConfidenceNone
}

func splitExpression(text string) []string {
	var parts []string
	for _, part := range licenseSeparators.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func confidenceRank(confidence types.Confidence) int {
	switch confidence {
	case types.ConfidenceExact:
		return 3
	case types.ConfidenceAliased:
		return 2
	case types.ConfidencePattern:
		return 1
	default:
		return 0
	}
}

// canonicalLicenses keys are lowercase SPDX-style identifiers.
var canonicalLicenses = map[string]types.LicenseCategory{
	"mit":          types.LicensePermissive,
	"mit-0":        types.LicensePermissive,
	"apache-2.0":   types.LicensePermissive,
	"apache-1.1":   types.LicensePermissive,
	"bsd-3-clause": types.LicensePermissive,
	"bsd-2-clause": types.LicensePermissive,
	"0bsd":         types.LicensePermissive,
	"isc":          types.LicensePermissive,
	"zlib":         types.LicensePermissive,
	"bsl-1.0":      types.LicensePermissive,
	"python-2.0":   types.LicensePermissive,
	"psf-2.0":      types.LicensePermissive,
	"hpnd":         types.LicensePermissive,
	"x11":          types.LicensePermissive,

	"mpl-2.0":           types.LicenseWeakCopyleft,
	"mpl-1.1":           types.LicenseWeakCopyleft,
	"epl-1.0":           types.LicenseWeakCopyleft,
	"epl-2.0":           types.LicenseWeakCopyleft,
	"cddl-1.0":          types.LicenseWeakCopyleft,
	"lgpl-2.1":          types.LicenseWeakCopyleft,
	"lgpl-3.0":          types.LicenseWeakCopyleft,
	"lgpl-2.1-only":     types.LicenseWeakCopyleft,
	"lgpl-2.1-or-later": types.LicenseWeakCopyleft,
	"lgpl-3.0-only":     types.LicenseWeakCopyleft,
	"lgpl-3.0-or-later": types.LicenseWeakCopyleft,

	"gpl-2.0":           types.LicenseStrongCopyleft,
	"gpl-3.0":           types.LicenseStrongCopyleft,
	"gpl-2.0-only":      types.LicenseStrongCopyleft,
	"gpl-2.0-or-later":  types.LicenseStrongCopyleft,
	"gpl-3.0-only":      types.LicenseStrongCopyleft,
	"gpl-3.0-or-later":  types.LicenseStrongCopyleft,
	"agpl-3.0":          types.LicenseStrongCopyleft,
	"agpl-3.0-only":     types.LicenseStrongCopyleft,
	"agpl-3.0-or-later": types.LicenseStrongCopyleft,

	"unlicense":     types.LicensePublicDomain,
	"cc0-1.0":       types.LicensePublicDomain,
	"wtfpl":         types.LicensePublicDomain,
	"public-domain": types.LicensePublicDomain,

	"proprietary": types.LicenseProprietary,
	"commercial":  types.LicenseProprietary,
}

// licenseAliases covers the spellings found in the wild, mostly PyPI
// metadata and trove classifiers.
var licenseAliases = map[string]types.LicenseCategory{
	"mit license":     types.LicensePermissive,
	"the mit license": types.LicensePermissive,
	"expat":           types.LicensePermissive,

	"apache":                             types.LicensePermissive,
	"apache 2":                           types.LicensePermissive,
	"apache-2":                           types.LicensePermissive,
	"apache 2.0":                         types.LicensePermissive,
	"apache license":                     types.LicensePermissive,
	"apache license 2.0":                 types.LicensePermissive,
	"apache license, version 2.0":        types.LicensePermissive,
	"apache software license":            types.LicensePermissive,
	"asl 2.0":                            types.LicensePermissive,
	"bsd":                                types.LicensePermissive,
	"bsd license":                        types.LicensePermissive,
	"new bsd":                            types.LicensePermissive,
	"new bsd license":                    types.LicensePermissive,
	"modified bsd":                       types.LicensePermissive,
	"simplified bsd":                     types.LicensePermissive,
	"bsd 3-clause":                       types.LicensePermissive,
	"bsd 2-clause":                       types.LicensePermissive,
	"3-clause bsd":                       types.LicensePermissive,
	"isc license (iscl)":                 types.LicensePermissive,
	"psf":                                types.LicensePermissive,
	"psf license":                        types.LicensePermissive,
	"python software foundation":         types.LicensePermissive,
	"python software foundation license": types.LicensePermissive,
	"zope public license":                types.LicensePermissive,

	"mpl":                                  types.LicenseWeakCopyleft,
	"mpl 2.0":                              types.LicenseWeakCopyleft,
	"mozilla":                              types.LicenseWeakCopyleft,
	"mozilla public license 2.0":           types.LicenseWeakCopyleft,
	"mozilla public license 2.0 (mpl 2.0)": types.LicenseWeakCopyleft,
	"lgpl":                                 types.LicenseWeakCopyleft,
	"lgplv2":                               types.LicenseWeakCopyleft,
	"lgplv2.1":                             types.LicenseWeakCopyleft,
	"lgplv3":                               types.LicenseWeakCopyleft,
	"lgpl v3":                              types.LicenseWeakCopyleft,
	"gnu lgpl":                             types.LicenseWeakCopyleft,

	"gpl":        types.LicenseStrongCopyleft,
	"gplv2":      types.LicenseStrongCopyleft,
	"gplv2+":     types.LicenseStrongCopyleft,
	"gpl v2":     types.LicenseStrongCopyleft,
	"gplv3":      types.LicenseStrongCopyleft,
	"gplv3+":     types.LicenseStrongCopyleft,
	"gpl v3":     types.LicenseStrongCopyleft,
	"gpl-3":      types.LicenseStrongCopyleft,
	"gnu gpl":    types.LicenseStrongCopyleft,
	"agpl":       types.LicenseStrongCopyleft,
	"agplv3":     types.LicenseStrongCopyleft,
	"affero gpl": types.LicenseStrongCopyleft,

	"public domain":             types.LicensePublicDomain,
	"cc0":                       types.LicensePublicDomain,
	"the unlicense (unlicense)": types.LicensePublicDomain,
	"do what the f*ck you want to public license": types.LicensePublicDomain,

	"other/proprietary license": types.LicenseProprietary,
	"all rights reserved":       types.LicenseProprietary,
}

// licensePatterns run in order against uppercased text; more specific
// families (Affero, Lesser) must precede the generic GPL match.
var licensePatterns = []licensePattern{
	{regexp.MustCompile(`GNU AFFERO|\bAGPL\b`), types.LicenseStrongCopyleft},
	{regexp.MustCompile(`GNU LESSER|GNU LIBRARY|\bLGPL\b`), types.LicenseWeakCopyleft},
	{regexp.MustCompile(`GNU GENERAL PUBLIC LICENSE|\bGPL\b`), types.LicenseStrongCopyleft},
	{regexp.MustCompile(`MOZILLA PUBLIC|\bMPL\b`), types.LicenseWeakCopyleft},
	{regexp.MustCompile(`ECLIPSE PUBLIC`), types.LicenseWeakCopyleft},
	{regexp.MustCompile(`APACHE`), types.LicensePermissive},
	{regexp.MustCompile(`\bMIT\b`), types.LicensePermissive},
	{regexp.MustCompile(`\bBSD\b`), types.LicensePermissive},
	{regexp.MustCompile(`\bISC\b`), types.LicensePermissive},
	{regexp.MustCompile(`PYTHON SOFTWARE FOUNDATION`), types.LicensePermissive},
	{regexp.MustCompile(`PUBLIC DOMAIN|UNLICENSE|\bCC0\b|\bWTFPL\b`), types.LicensePublicDomain},
	{regexp.MustCompile(`PROPRIETARY|ALL RIGHTS RESERVED|COMMERCIAL LICENSE`), types.LicenseProprietary},
}
