package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type lockOptions struct {
	Recipe        string
	Config        string
	Index         string
	OutputDir     string
	Channel       string
	Subdir        string
	Platform      string
	PyVersion     int
	LockID        string
	MergeSections bool
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve recipe requirements into pinned lock outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "Recipe meta.yaml path")
	cmd.Flags().StringVar(&opts.Config, "lock-config", "", "Lock config file (pins and resolutions)")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Channel index file")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().StringVar(&opts.Channel, "channel", "", "Channel URL recorded in outputs")
	cmd.Flags().StringVar(&opts.Subdir, "subdir", "", "Platform subdirectory (e.g. linux-64)")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Render platform (linux, osx, win, noarch)")
	cmd.Flags().IntVar(&opts.PyVersion, "py", 0, "Python version for selectors (e.g. 39)")
	cmd.Flags().StringVar(&opts.LockID, "lock-id", "", "Lock ID (optional override)")
	cmd.Flags().BoolVar(&opts.MergeSections, "merge-sections", false, "Fold a dependency named in several sections into one entry (run > host > build > test)")

	_ = viper.BindPFlag("recipe", cmd.Flags().Lookup("recipe"))
	_ = viper.BindPFlag("lock_config", cmd.Flags().Lookup("lock-config"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("channel", cmd.Flags().Lookup("channel"))
	_ = viper.BindPFlag("subdir", cmd.Flags().Lookup("subdir"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("py", cmd.Flags().Lookup("py"))
	_ = viper.BindPFlag("lock_id", cmd.Flags().Lookup("lock-id"))
	_ = viper.BindPFlag("merge_sections", cmd.Flags().Lookup("merge-sections"))

	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := newAppService()
	result, err := service.Lock(ctx, app.LockRequest{
		RecipePath:    resolveString(cmd, opts.Recipe, "recipe", "recipe"),
		ConfigPath:    resolveString(cmd, opts.Config, "lock_config", "lock-config"),
		IndexPath:     resolveString(cmd, opts.Index, "index", "index"),
		OutputDir:     resolveString(cmd, opts.OutputDir, "output", "output"),
		Channel:       resolveString(cmd, opts.Channel, "channel", "channel"),
		Subdir:        resolveString(cmd, opts.Subdir, "subdir", "subdir"),
		Platform:      resolveString(cmd, opts.Platform, "platform", "platform"),
		PyVersion:     resolveInt(cmd, opts.PyVersion, "py", "py"),
		LockID:        resolveString(cmd, opts.LockID, "lock_id", "lock-id"),
		MergeSections: resolveBool(cmd, opts.MergeSections, "merge_sections", "merge-sections"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked: %s (%d entries, %s)\n", result.PackageName, result.EntryCount, result.LockID)
	return nil
}
