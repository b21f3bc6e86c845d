package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"license-audit/internal/adapters"
	"license-audit/internal/core"
	"license-audit/internal/policies"
	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// parseOutcome holds the result slot for one manifest. Manifests are
// parsed concurrently but merged strictly in discovery order, so the run
// is reproducible regardless of scheduling.
type parseOutcome struct {
	ref    types.ManifestRef
	result core.ParseResult
	failed *types.FailedManifest
}

func (s Service) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	policy, err := s.loadPolicy(ctx, req.PolicyPath)
	if err != nil {
		return ScanResult{}, err
	}
	rule := policy.DualLicenseRule()
	if req.DualLicenses != "" {
		switch types.DualLicenseRule(req.DualLicenses) {
		case types.DualLicenseMostRestrictive, types.DualLicenseLeastRestrictive:
			rule = types.DualLicenseRule(req.DualLicenses)
		default:
			return ScanResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid dual-license rule: %s", req.DualLicenses))
		}
	}

	refs, err := s.Locator.Discover(root)
	if err != nil {
		return ScanResult{}, err
	}
	if len(refs) == 0 {
		return ScanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no dependency manifests found under project root")
	}

	outcomes := s.parseManifests(refs)

	var declarations []types.Declaration
	var anomalies []types.LineAnomaly
	var failed []types.FailedManifest
	for _, outcome := range outcomes {
		if outcome.failed != nil {
			failed = append(failed, *outcome.failed)
			continue
		}
		declarations = append(declarations, outcome.result.Declarations...)
		anomalies = append(anomalies, outcome.result.Anomalies...)
	}

	declarations = core.FilterDeclarations(declarations, core.FilterOptions{
		IncludeDev:      req.IncludeDev,
		IncludeOptional: req.IncludeOptional,
		RuntimeOnly:     req.RuntimeOnly,
		ExcludePatterns: req.ExcludePatterns,
	})

	chain, err := s.buildChain(req)
	if err != nil {
		return ScanResult{}, err
	}
	resolver := core.NewResolver(core.NewNormalizer(rule), chain)

	verdicts := make([]types.Verdict, 0, len(declarations))
	for _, decl := range declarations {
		resolved, err := resolver.Resolve(ctx, decl)
		if err != nil {
			return ScanResult{}, err
		}
		verdicts = append(verdicts, policy.Classify(resolved))
	}

	project := strings.TrimSpace(req.ProjectName)
	if project == "" {
		project = projectNameFromRoot(root)
	}
	report := core.Aggregate(project, s.now().Format(time.RFC3339), verdicts, anomalies, failed)

	if err := s.writeReport(report, outputDir, req.Formats); err != nil {
		return ScanResult{}, err
	}

	log.Info().
		Str("project", project).
		Int("dependencies", len(report.Entries)).
		Int("failed_manifests", len(failed)).
		Msg("scan complete")

	return ScanResult{
		Project:         project,
		OutputDir:       outputDir,
		Total:           len(report.Entries),
		Allowed:         report.SummaryCounts[types.DecisionAllowed],
		Flagged:         report.SummaryCounts[types.DecisionFlagged],
		Blocked:         report.SummaryCounts[types.DecisionBlocked],
		Unknown:         report.SummaryCounts[types.DecisionUnknown],
		Unresolved:      report.UnresolvedCount,
		FailedManifests: len(failed),
	}, nil
}

// parseManifests parses every discovered manifest concurrently. Each
// manifest writes into its own slot; a structurally unreadable manifest
// becomes a FailedManifest instead of aborting the run.
func (s Service) parseManifests(refs []types.ManifestRef) []parseOutcome {
	outcomes := make([]parseOutcome, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(slot int, ref types.ManifestRef) {
			defer wg.Done()
			outcomes[slot] = s.parseOne(ref)
		}(i, ref)
	}
	wg.Wait()
	return outcomes
}

func (s Service) parseOne(ref types.ManifestRef) parseOutcome {
	raw, err := s.Locator.Read(ref.Path)
	if err != nil {
		return parseOutcome{ref: ref, failed: &types.FailedManifest{
			Source: ref.Path,
			Reason: err.Error(),
		}}
	}
	result, err := core.ParseManifest(ref.Dialect, raw, ref.Path)
	if err != nil {
		log.Warn().Str("manifest", ref.Path).Err(err).Msg("skipping unparseable manifest")
		return parseOutcome{ref: ref, failed: &types.FailedManifest{
			Source: ref.Path,
			Reason: err.Error(),
		}}
	}
	return parseOutcome{ref: ref, result: result}
}

func (s Service) loadPolicy(ctx context.Context, path string) (policies.LicensePolicy, error) {
	if strings.TrimSpace(path) == "" {
		return policies.DefaultPolicy(), nil
	}
	file, err := s.PolicySource.LoadPolicy(path)
	if err != nil {
		return policies.LicensePolicy{}, err
	}
	return policies.CompilePolicy(ctx, file)
}

// buildChain assembles the lookup sources in provenance order: explicit
// overrides first, installed metadata second, the embedded index last.
func (s Service) buildChain(req ScanRequest) ([]ports.LicenseSourcePort, error) {
	var chain []ports.LicenseSourcePort
	if strings.TrimSpace(req.OverridePath) != "" {
		override, err := adapters.NewOverrideSourceAdapter(req.OverridePath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, override)
	}
	if len(req.SitePackages) > 0 {
		chain = append(chain, adapters.NewDistInfoSourceAdapter(req.SitePackages))
	}
	chain = append(chain, adapters.NewEmbeddedIndexSourceAdapter())
	return chain, nil
}

func (s Service) writeReport(report types.Report, outputDir string, formats []string) error {
	if len(formats) == 0 {
		formats = []string{"text", "json"}
	}
	writer := adapters.NewReportWriterAdapter(outputDir)
	for _, format := range formats {
		var err error
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "text":
			err = writer.WriteText(report)
		case "json":
			err = writer.WriteJSON(report)
		case "markdown":
			err = writer.WriteMarkdown(report)
		default:
			err = errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported report format: %s", format))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func projectNameFromRoot(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}
