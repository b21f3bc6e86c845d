package types

// LineAnomaly records a single malformed declaration that was recovered
// rather than aborting its manifest.
type LineAnomaly struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Note   string `json:"note"`
}

// FailedManifest records a manifest that was structurally unreadable and
// skipped. The run continues with the manifests that parsed.
type FailedManifest struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// ReportEntry is one deduplicated dependency with its merged verdict and
// every manifest that contributed it.
type ReportEntry struct {
	Name       string          `json:"name"`
	Version    string          `json:"version,omitempty"`
	Scope      DepScope        `json:"scope"`
	License    string          `json:"license,omitempty"`
	Category   LicenseCategory `json:"category"`
	Confidence Confidence      `json:"confidence"`
	Source     string          `json:"resolution_source,omitempty"`
	Decision   Decision        `json:"decision"`
	Reason     string          `json:"reason"`
	Manifests  []string        `json:"manifests"`
}

// Report is the final aggregation result. It is built once per run and
// never mutated afterwards; SummaryCounts and UnresolvedCount are derived
// from Entries at construction so formatters never re-tally.
type Report struct {
	Project         string           `json:"project"`
	GeneratedAt     string           `json:"generated_at"`
	Entries         []ReportEntry    `json:"entries"`
	SummaryCounts   map[Decision]int `json:"summary_counts"`
	UnresolvedCount int              `json:"unresolved_count"`
	Anomalies       []LineAnomaly    `json:"anomalies,omitempty"`
	FailedManifests []FailedManifest `json:"failed_manifests,omitempty"`
}
