package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func verdictFor(name string, constraint string, source string, category types.LicenseCategory, decision types.Decision) types.Verdict {
	return types.Verdict{
		License: types.ResolvedLicense{
			Declaration: types.Declaration{
				Name:       name,
				RawName:    name,
				Constraint: ParseConstraint(constraint),
				Scope:      types.ScopeRuntime,
				Source:     source,
				Direct:     true,
			},
			Raw:        string(category),
			Category:   category,
			Confidence: types.ConfidenceExact,
			SourceName: "embedded-index",
		},
		Decision: decision,
		Reason:   "test verdict",
	}
}

func TestAggregateDeduplicatesAcrossManifests(t *testing.T) {
	verdicts := []types.Verdict{
		verdictFor("requests", "==2.28.0", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("requests", "==2.28.0", "pyproject.toml", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("click", "==8.1.3", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
	}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", verdicts, nil, nil)
	require.Len(t, report.Entries, 2)

	requests := report.Entries[0]
	require.Equal(t, "requests", requests.Name)
	want := []string{"requirements.txt", "pyproject.toml"}
	if diff := cmp.Diff(want, requests.Manifests); diff != "" {
		t.Fatalf("unexpected manifests (-want +got):\n%s", diff)
	}
}

func TestAggregateDistinctVersionsStaySeparate(t *testing.T) {
	verdicts := []types.Verdict{
		verdictFor("requests", "==2.28.0", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("requests", "==2.31.0", "pyproject.toml", types.LicensePermissive, types.DecisionAllowed),
	}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", verdicts, nil, nil)
	require.Len(t, report.Entries, 2)
}

func TestAggregateMergeKeepsWorstCase(t *testing.T) {
	verdicts := []types.Verdict{
		verdictFor("pyqt5", "==5.15.9", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("pyqt5", "==5.15.9", "pyproject.toml", types.LicenseStrongCopyleft, types.DecisionFlagged),
		verdictFor("pyqt5", "==5.15.9", "setup.py", types.LicensePermissive, types.DecisionAllowed),
	}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", verdicts, nil, nil)
	require.Len(t, report.Entries, 1)

	entry := report.Entries[0]
	require.Equal(t, types.DecisionFlagged, entry.Decision)
	require.Equal(t, types.LicenseStrongCopyleft, entry.Category)
	want := []string{"requirements.txt", "pyproject.toml", "setup.py"}
	if diff := cmp.Diff(want, entry.Manifests); diff != "" {
		t.Fatalf("unexpected manifests (-want +got):\n%s", diff)
	}
}

func TestAggregateSummaryCountsMatchEntries(t *testing.T) {
	verdicts := []types.Verdict{
		verdictFor("requests", "==2.28.0", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("pyqt5", "==5.15.9", "requirements.txt", types.LicenseStrongCopyleft, types.DecisionFlagged),
		verdictFor("oracle-db", "==1.0.0", "requirements.txt", types.LicenseProprietary, types.DecisionBlocked),
		verdictFor("mystery", "==0.1.0", "requirements.txt", types.LicenseUnknown, types.DecisionFlagged),
	}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", verdicts, nil, nil)

	total := 0
	for _, count := range report.SummaryCounts {
		total += count
	}
	require.Equal(t, len(report.Entries), total)
	require.Equal(t, 1, report.SummaryCounts[types.DecisionAllowed])
	require.Equal(t, 2, report.SummaryCounts[types.DecisionFlagged])
	require.Equal(t, 1, report.SummaryCounts[types.DecisionBlocked])
	require.Equal(t, 1, report.UnresolvedCount)
}

func TestAggregatePreservesFirstSeenOrder(t *testing.T) {
	verdicts := []types.Verdict{
		verdictFor("zzz", "==1.0.0", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("aaa", "==1.0.0", "requirements.txt", types.LicensePermissive, types.DecisionAllowed),
		verdictFor("zzz", "==1.0.0", "pyproject.toml", types.LicensePermissive, types.DecisionAllowed),
	}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", verdicts, nil, nil)
	require.Len(t, report.Entries, 2)
	require.Equal(t, "zzz", report.Entries[0].Name)
	require.Equal(t, "aaa", report.Entries[1].Name)
}

func TestAggregateCarriesAnomaliesAndFailures(t *testing.T) {
	anomalies := []types.LineAnomaly{{Source: "requirements.txt", Line: 3, Text: "foo==bad", Note: "x"}}
	failed := []types.FailedManifest{{Source: "setup.py", Reason: "no setup() call found"}}

	report := Aggregate("demo", "2026-08-23T00:00:00Z", nil, anomalies, failed)
	require.Empty(t, report.Entries)
	require.Equal(t, anomalies, report.Anomalies)
	require.Equal(t, failed, report.FailedManifests)
}
