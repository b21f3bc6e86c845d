package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"license-audit/internal/types"
)

func sampleReport() types.Report {
	return types.Report{
		Project:     "demo",
		GeneratedAt: "2026-08-23T00:00:00Z",
		Entries: []types.ReportEntry{
			{
				Name:       "requests",
				Version:    "2.28.0",
				Scope:      types.ScopeRuntime,
				License:    "Apache-2.0",
				Category:   types.LicensePermissive,
				Confidence: types.ConfidenceExact,
				Source:     "embedded-index",
				Decision:   types.DecisionAllowed,
				Reason:     "no policy rule matched",
				Manifests:  []string{"requirements.txt", "pyproject.toml"},
			},
			{
				Name:       "pyqt5",
				Version:    "5.15.9",
				Scope:      types.ScopeRuntime,
				License:    "GPL-3.0",
				Category:   types.LicenseStrongCopyleft,
				Confidence: types.ConfidenceExact,
				Source:     "embedded-index",
				Decision:   types.DecisionFlagged,
				Reason:     "category strong-copyleft is in the flagged list",
				Manifests:  []string{"requirements.txt"},
			},
		},
		SummaryCounts: map[types.Decision]int{
			types.DecisionAllowed: 1,
			types.DecisionFlagged: 1,
		},
		UnresolvedCount: 0,
		Anomalies: []types.LineAnomaly{
			{Source: "requirements.txt", Line: 3, Text: "foo==bad-version-string", Note: "constraint preserved verbatim: ==bad-version-string"},
		},
		FailedManifests: []types.FailedManifest{
			{Source: "legacy/setup.py", Reason: "no setup() call found"},
		},
	}
}

func TestWriteJSONThenReadBack(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	require.NoError(t, NewReportWriterAdapter(dir).WriteJSON(report))

	loaded, err := NewReportReaderAdapter().ReadReport(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	if diff := cmp.Diff(report, loaded); diff != "" {
		t.Fatalf("report changed through the json round trip (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewReportWriterAdapter(dir).WriteText(sampleReport()))

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	text := string(data)

	require.Contains(t, text, "THIRD-PARTY LICENSE AUDIT")
	require.Contains(t, text, "Project:      demo")
	require.Contains(t, text, "Total dependencies: 2")
	require.Contains(t, text, "Flagged: 1")
	require.Contains(t, text, "Allowed: 1")
	require.Contains(t, text, "MANIFESTS SKIPPED (unparseable):")
	require.Contains(t, text, "legacy/setup.py: no setup() call found")
	require.Contains(t, text, "RECOVERED LINE ANOMALIES:")
	require.Contains(t, text, "requirements.txt:3: foo==bad-version-string")
	require.Contains(t, text, "Package:    requests")
	require.Contains(t, text, "Manifests:  requirements.txt, pyproject.toml")
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewReportWriterAdapter(dir).WriteMarkdown(sampleReport()))

	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	text := string(data)

	require.Contains(t, text, "# Third-Party License Audit")
	require.Contains(t, text, "| requests | 2.28.0 | runtime | Apache-2.0 | permissive | allowed |")
	require.Contains(t, text, "| pyqt5 | 5.15.9 | runtime | GPL-3.0 | strong-copyleft | flagged |")
	require.Contains(t, text, "## Skipped Manifests")
	require.Contains(t, text, "- `legacy/setup.py`: no setup() call found")
}

func TestWriterCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, NewReportWriterAdapter(dir).WriteJSON(sampleReport()))

	_, err := os.Stat(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
}

func TestWriterEmptyDirFails(t *testing.T) {
	err := NewReportWriterAdapter("").WriteJSON(sampleReport())
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReadReportMissingFile(t *testing.T) {
	_, err := NewReportReaderAdapter().ReadReport(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestReadReportInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewReportReaderAdapter().ReadReport(path)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestOrDash(t *testing.T) {
	require.Equal(t, "-", orDash(""))
	require.Equal(t, "2.28.0", orDash("2.28.0"))
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Allowed", capitalize("allowed"))
	require.Equal(t, "Flagged", capitalize("flagged"))
	require.Equal(t, "", capitalize(""))
}
