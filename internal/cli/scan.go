package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-audit/internal/app"
)

type scanOptions struct {
	Root            string
	ProjectName     string
	Policy          string
	Overrides       string
	SitePackages    []string
	OutputDir       string
	Formats         []string
	IncludeDev      bool
	IncludeOptional bool
	RuntimeOnly     bool
	Exclude         []string
	DualLicenses    string
}

func newScanCommand() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan project manifests and produce a license report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := runScan(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			printScanResult(result)
			return nil
		},
	}
	addScanFlags(cmd, &opts)
	return cmd
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Project root to scan")
	cmd.Flags().StringVar(&opts.ProjectName, "project-name", "", "Override detected project name")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Risk policy file (yaml)")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "License override table (yaml)")
	cmd.Flags().StringSliceVar(&opts.SitePackages, "site-packages", nil, "Installed-environment metadata root(s)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().StringSliceVar(&opts.Formats, "format", nil, "Report formats: text, json, markdown")
	cmd.Flags().BoolVar(&opts.IncludeDev, "include-dev", false, "Include development dependencies")
	cmd.Flags().BoolVar(&opts.IncludeOptional, "include-optional", false, "Include optional dependencies")
	cmd.Flags().BoolVar(&opts.RuntimeOnly, "runtime-only", false, "Runtime dependencies only (distribution compliance mode)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Package name patterns to exclude (wildcards allowed)")
	cmd.Flags().StringVar(&opts.DualLicenses, "dual-licenses", "", "Dual-license rule: most-restrictive or least-restrictive")

	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("project_name", cmd.Flags().Lookup("project-name"))
	_ = viper.BindPFlag("policy", cmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("overrides", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("site_packages", cmd.Flags().Lookup("site-packages"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("formats", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("include_dev", cmd.Flags().Lookup("include-dev"))
	_ = viper.BindPFlag("include_optional", cmd.Flags().Lookup("include-optional"))
	_ = viper.BindPFlag("runtime_only", cmd.Flags().Lookup("runtime-only"))
	_ = viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("dual_licenses", cmd.Flags().Lookup("dual-licenses"))
}

func runScan(ctx context.Context, cmd *cobra.Command, opts scanOptions) (app.ScanResult, error) {
	service := newAppService()
	return service.Scan(ctx, app.ScanRequest{
		Root:            resolveString(cmd, opts.Root, "root", "root"),
		ProjectName:     resolveString(cmd, opts.ProjectName, "project_name", "project-name"),
		PolicyPath:      resolveString(cmd, opts.Policy, "policy", "policy"),
		OverridePath:    resolveString(cmd, opts.Overrides, "overrides", "overrides"),
		SitePackages:    resolveStrings(cmd, opts.SitePackages, "site_packages", "site-packages"),
		OutputDir:       resolveString(cmd, opts.OutputDir, "output", "output"),
		Formats:         resolveStrings(cmd, opts.Formats, "formats", "format"),
		IncludeDev:      resolveBool(cmd, opts.IncludeDev, "include_dev", "include-dev"),
		IncludeOptional: resolveBool(cmd, opts.IncludeOptional, "include_optional", "include-optional"),
		RuntimeOnly:     resolveBool(cmd, opts.RuntimeOnly, "runtime_only", "runtime-only"),
		ExcludePatterns: resolveStrings(cmd, opts.Exclude, "exclude", "exclude"),
		DualLicenses:    resolveString(cmd, opts.DualLicenses, "dual_licenses", "dual-licenses"),
	})
}

func printScanResult(result app.ScanResult) {
	fmt.Printf("scanned: %s (%d dependencies)\n", result.Project, result.Total)
	fmt.Printf("allowed=%d flagged=%d blocked=%d unknown=%d unresolved=%d\n",
		result.Allowed, result.Flagged, result.Blocked, result.Unknown, result.Unresolved)
	if result.FailedManifests > 0 {
		fmt.Printf("skipped manifests: %d\n", result.FailedManifests)
	}
	fmt.Printf("report written to %s\n", result.OutputDir)
}
