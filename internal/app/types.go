package app

import "license-audit/internal/types"

type ScanRequest struct {
	Root            string
	ProjectName     string
	PolicyPath      string
	OverridePath    string
	SitePackages    []string
	OutputDir       string
	Formats         []string
	IncludeDev      bool
	IncludeOptional bool
	RuntimeOnly     bool
	ExcludePatterns []string
	DualLicenses    string
}

type ScanResult struct {
	Project         string
	OutputDir       string
	Total           int
	Allowed         int
	Flagged         int
	Blocked         int
	Unknown         int
	Unresolved      int
	FailedManifests int
}

type InspectRequest struct {
	ReportPath string
}

type InspectResult struct {
	Project    string
	Total      int
	Counts     map[types.Decision]int
	Unresolved int
}
