package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type pruneOptions struct {
	ArtifactsDir string
	KeepLast     int
	KeepDays     int
	ProtectNames []string
	DryRun       bool
}

func newPruneCommand() *cobra.Command {
	opts := pruneOptions{}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old package artifacts from a local channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrune(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ArtifactsDir, "artifacts", "", "Directory with built packages")
	cmd.Flags().IntVar(&opts.KeepLast, "keep-last", 0, "Keep the newest N files per package")
	cmd.Flags().IntVar(&opts.KeepDays, "keep-days", 0, "Keep files newer than N days")
	cmd.Flags().StringSliceVar(&opts.ProtectNames, "protect", nil, "Package names never deleted")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Plan only, delete nothing")

	_ = viper.BindPFlag("artifacts", cmd.Flags().Lookup("artifacts"))
	_ = viper.BindPFlag("keep_last", cmd.Flags().Lookup("keep-last"))
	_ = viper.BindPFlag("keep_days", cmd.Flags().Lookup("keep-days"))
	_ = viper.BindPFlag("protect", cmd.Flags().Lookup("protect"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runPrune(ctx context.Context, cmd *cobra.Command, opts pruneOptions) error {
	service := newAppService()
	result, err := service.PruneArtifacts(ctx, app.PruneRequest{
		ArtifactsDir: resolveString(cmd, opts.ArtifactsDir, "artifacts", "artifacts"),
		KeepLast:     resolveInt(cmd, opts.KeepLast, "keep_last", "keep-last"),
		KeepDays:     resolveInt(cmd, opts.KeepDays, "keep_days", "keep-days"),
		ProtectNames: resolveStrings(cmd, opts.ProtectNames, "protect", "protect"),
		DryRun:       resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	if err != nil {
		return err
	}
	if result.DryRun {
		fmt.Printf("prune (dry run): keep %d, delete %d\n", result.KeepCount, result.DeleteCount)
		return nil
	}
	fmt.Printf("pruned: kept %d, deleted %d\n", result.KeepCount, result.DeleteCount)
	for _, path := range result.Deleted {
		fmt.Printf("- %s\n", path)
	}
	return nil
}
