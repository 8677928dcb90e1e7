package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect lock outputs and their provenance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("conda.lock entries: %d\n", result.LockEntryCount)
	for _, summary := range result.Sections {
		fmt.Printf("- %s: %d packages\n", summary.Section, summary.Count)
		if len(summary.Packages) > 0 {
			fmt.Printf("  %s\n", strings.Join(summary.Packages, ", "))
		}
	}
	fmt.Printf("lock.intent: %s (%s/%s, created %s)\n",
		result.Intent.LockID, result.Intent.Channel, result.Intent.Subdir, result.Intent.CreatedAt)
	return nil
}
