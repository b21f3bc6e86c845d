package adapters

import (
	"encoding/json"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// ReportReaderAdapter loads a previously written JSON report.
type ReportReaderAdapter struct{}

func NewReportReaderAdapter() ReportReaderAdapter {
	return ReportReaderAdapter{}
}

func (a ReportReaderAdapter) ReadReport(path string) (types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Report{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("report file not found").
			WithCause(err)
	}
	var report types.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return types.Report{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse report json").
			WithCause(err)
	}
	return report, nil
}

var _ ports.ReportReaderPort = ReportReaderAdapter{}
