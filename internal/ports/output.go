package ports

import "license-audit/internal/types"

// ReportWriterPort renders a finished report. Writers consume the report
// read-only; every count they print is already derived.
type ReportWriterPort interface {
	WriteText(report types.Report) error
	WriteJSON(report types.Report) error
	WriteMarkdown(report types.Report) error
}

// ReportReaderPort loads a previously written JSON report back, for
// inspection without re-scanning.
type ReportReaderPort interface {
	ReadReport(path string) (types.Report, error)
}
