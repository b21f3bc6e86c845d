package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-audit/internal/types"
)

// Inspect loads a previously written JSON report and summarizes it. The
// stored summary is cross-checked against the entries so a hand-edited or
// truncated report is rejected instead of quietly misreported.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ReportPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	report, err := s.ReportReader.ReadReport(path)
	if err != nil {
		return InspectResult{}, err
	}

	recounted := map[types.Decision]int{}
	for _, entry := range report.Entries {
		recounted[entry.Decision]++
	}
	for decision, count := range report.SummaryCounts {
		if recounted[decision] != count {
			return InspectResult{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("report summary counts do not match entries")
		}
	}

	return InspectResult{
		Project:    report.Project,
		Total:      len(report.Entries),
		Counts:     recounted,
		Unresolved: report.UnresolvedCount,
	}, nil
}
