package core

import (
	"license-audit/internal/types"
)

// Aggregate folds classified verdicts into the final report. Dependencies
// seen in multiple manifests deduplicate on normalized name plus
// reconciled version; colliding entries keep the most restrictive verdict
// and accumulate every contributing manifest. Entry order is first-seen
// order, so output is reproducible for a given input order. Summary
// counts are recomputed from the entries here and nowhere else.
func Aggregate(project string, generatedAt string, verdicts []types.Verdict, anomalies []types.LineAnomaly, failed []types.FailedManifest) types.Report {
	index := map[string]int{}
	var entries []types.ReportEntry

	for _, verdict := range verdicts {
		decl := verdict.License.Declaration
		key := decl.Name + "@" + decl.Constraint.Reconciled()
		if at, seen := index[key]; seen {
			entries[at] = mergeEntry(entries[at], verdict)
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entryFromVerdict(verdict))
	}

	counts := map[types.Decision]int{}
	unresolved := 0
	for _, entry := range entries {
		counts[entry.Decision]++
		if entry.Category == types.LicenseUnknown {
			unresolved++
		}
	}

	return types.Report{
		Project:         project,
		GeneratedAt:     generatedAt,
		Entries:         entries,
		SummaryCounts:   counts,
		UnresolvedCount: unresolved,
		Anomalies:       anomalies,
		FailedManifests: failed,
	}
}

func entryFromVerdict(verdict types.Verdict) types.ReportEntry {
	decl := verdict.License.Declaration
	return types.ReportEntry{
		Name:       decl.Name,
		Version:    decl.Constraint.Reconciled(),
		Scope:      decl.Scope,
		License:    verdict.License.Raw,
		Category:   verdict.License.Category,
		Confidence: verdict.License.Confidence,
		Source:     verdict.License.SourceName,
		Decision:   verdict.Decision,
		Reason:     verdict.Reason,
		Manifests:  []string{decl.Source},
	}
}

// mergeEntry reconciles a duplicate sighting of the same dependency. The
// worst-case side wins wholesale so decision, category, and reason stay
// consistent with each other.
func mergeEntry(current types.ReportEntry, verdict types.Verdict) types.ReportEntry {
	incoming := entryFromVerdict(verdict)
	merged := current
	if incoming.Decision.Severity() > current.Decision.Severity() ||
		(incoming.Decision.Severity() == current.Decision.Severity() &&
			incoming.Category.Restrictiveness() > current.Category.Restrictiveness()) {
		manifests := merged.Manifests
		merged = incoming
		merged.Manifests = manifests
	}
	merged.Manifests = appendManifest(merged.Manifests, verdict.License.Declaration.Source)
	return merged
}

func appendManifest(manifests []string, source string) []string {
	for _, existing := range manifests {
		if existing == source {
			return manifests
		}
	}
	return append(manifests, source)
}
