package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// ReportWriterAdapter renders a finished report into an output directory:
// report.txt, report.json, and report.md. Writers never recompute counts;
// everything they print is already on the report.
type ReportWriterAdapter struct {
	Dir string
}

func NewReportWriterAdapter(dir string) ReportWriterAdapter {
	return ReportWriterAdapter{Dir: dir}
}

func (a ReportWriterAdapter) WriteJSON(report types.Report) error {
	path, err := a.ensurePath("report.json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal report").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0644)
}

func (a ReportWriterAdapter) WriteText(report types.Report) error {
	path, err := a.ensurePath("report.txt")
	if err != nil {
		return err
	}
	var lines []string
	rule := strings.Repeat("=", 72)
	lines = append(lines,
		rule,
		"THIRD-PARTY LICENSE AUDIT",
		rule,
		"",
		fmt.Sprintf("Project:      %s", report.Project),
		fmt.Sprintf("Generated at: %s", report.GeneratedAt),
		"",
		"SUMMARY:",
		fmt.Sprintf("  Total dependencies: %d", len(report.Entries)),
	)
	for _, decision := range []types.Decision{
		types.DecisionBlocked, types.DecisionFlagged,
		types.DecisionUnknown, types.DecisionAllowed,
	} {
		if count := report.SummaryCounts[decision]; count > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", capitalize(string(decision)), count))
		}
	}
	lines = append(lines, fmt.Sprintf("  Unresolved licenses: %d", report.UnresolvedCount), "")

	if len(report.FailedManifests) > 0 {
		lines = append(lines, "MANIFESTS SKIPPED (unparseable):")
		for _, failed := range report.FailedManifests {
			lines = append(lines, fmt.Sprintf("  - %s: %s", failed.Source, failed.Reason))
		}
		lines = append(lines, "")
	}
	if len(report.Anomalies) > 0 {
		lines = append(lines, "RECOVERED LINE ANOMALIES:")
		for _, anomaly := range report.Anomalies {
			lines = append(lines, fmt.Sprintf("  - %s:%d: %s (%s)", anomaly.Source, anomaly.Line, anomaly.Text, anomaly.Note))
		}
		lines = append(lines, "")
	}

	lines = append(lines, rule, "DEPENDENCY DETAILS", rule, "")
	for _, entry := range report.Entries {
		lines = append(lines,
			fmt.Sprintf("Package:    %s", entry.Name),
			fmt.Sprintf("Version:    %s", orDash(entry.Version)),
			fmt.Sprintf("Scope:      %s", entry.Scope),
			fmt.Sprintf("License:    %s", orDash(entry.License)),
			fmt.Sprintf("Category:   %s (%s)", entry.Category, entry.Confidence),
			fmt.Sprintf("Decision:   %s (%s)", entry.Decision, entry.Reason),
			fmt.Sprintf("Manifests:  %s", strings.Join(entry.Manifests, ", ")),
			strings.Repeat("-", 40),
			"",
		)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a ReportWriterAdapter) WriteMarkdown(report types.Report) error {
	path, err := a.ensurePath("report.md")
	if err != nil {
		return err
	}
	var lines []string
	lines = append(lines,
		"# Third-Party License Audit",
		"",
		fmt.Sprintf("**Project:** %s", report.Project),
		fmt.Sprintf("**Generated at:** %s", report.GeneratedAt),
		"",
		"## Summary",
		"",
		fmt.Sprintf("- **Total dependencies:** %d", len(report.Entries)),
		fmt.Sprintf("- **Blocked:** %d", report.SummaryCounts[types.DecisionBlocked]),
		fmt.Sprintf("- **Flagged:** %d", report.SummaryCounts[types.DecisionFlagged]),
		fmt.Sprintf("- **Unknown:** %d", report.SummaryCounts[types.DecisionUnknown]),
		fmt.Sprintf("- **Allowed:** %d", report.SummaryCounts[types.DecisionAllowed]),
		fmt.Sprintf("- **Unresolved licenses:** %d", report.UnresolvedCount),
		"",
		"## Dependencies",
		"",
		"| Package | Version | Scope | License | Category | Decision |",
		"|---------|---------|-------|---------|----------|----------|",
	)
	for _, entry := range report.Entries {
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
			entry.Name, orDash(entry.Version), entry.Scope,
			orDash(entry.License), entry.Category, entry.Decision))
	}
	if len(report.FailedManifests) > 0 {
		lines = append(lines, "", "## Skipped Manifests", "")
		for _, failed := range report.FailedManifests {
			lines = append(lines, fmt.Sprintf("- `%s`: %s", failed.Source, failed.Reason))
		}
	}
	lines = append(lines, "")
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a ReportWriterAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

var _ ports.ReportWriterPort = ReportWriterAdapter{}
