package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"license-audit/internal/app"
	"license-audit/internal/types"
)

type inspectOptions struct {
	Report string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a previously written report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Report, "report", "out/report.json", "Report file to inspect")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("project: %s\n", result.Project)
	fmt.Printf("dependencies: %d\n", result.Total)
	for _, decision := range []types.Decision{
		types.DecisionBlocked, types.DecisionFlagged,
		types.DecisionUnknown, types.DecisionAllowed,
	} {
		if count := result.Counts[decision]; count > 0 {
			fmt.Printf("- %s: %d\n", decision, count)
		}
	}
	fmt.Printf("unresolved licenses: %d\n", result.Unresolved)
	return nil
}
