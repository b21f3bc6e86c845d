package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type checkOptions struct {
	scanOptions
	FailOnUnknown bool
}

// check runs a scan and turns the aggregate outcome into an exit code, so
// CI pipelines can gate on licensing without parsing the report.
func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan and fail when blocked or unresolved licenses are found",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	addScanFlags(cmd, &opts.scanOptions)
	cmd.Flags().BoolVar(&opts.FailOnUnknown, "fail-on-unknown", false, "Fail when licenses could not be resolved")
	_ = viper.BindPFlag("fail_on_unknown", cmd.Flags().Lookup("fail-on-unknown"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	result, err := runScan(ctx, cmd, opts.scanOptions)
	if err != nil {
		return err
	}
	printScanResult(result)

	if result.Blocked > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("blocked licenses present: %d dependencies", result.Blocked))
	}
	if resolveBool(cmd, opts.FailOnUnknown, "fail_on_unknown", "fail-on-unknown") && result.Unresolved > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unresolved licenses present: %d dependencies", result.Unresolved))
	}
	return nil
}
