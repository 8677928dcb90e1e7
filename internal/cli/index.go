package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type indexOptions struct {
	RecipeRoots  []string
	Channels     []string
	Subdir       string
	Output       string
	User         string
	APIKey       string
	Workers      int
	HTTPTimeout  int
	HTTPRetries  int
	RetryDelayMs int
	Platform     string
	PyVersion    int
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a channel index from recipe trees and remote channels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.RecipeRoots, "recipe-root", nil, "Recipe tree root(s)")
	cmd.Flags().StringSliceVar(&opts.Channels, "channel", nil, "Remote channel URL(s)")
	cmd.Flags().StringVar(&opts.Subdir, "subdir", "", "Platform subdirectory (e.g. linux-64)")
	cmd.Flags().StringVar(&opts.Output, "output", "channel-index.yaml", "Index output path")
	cmd.Flags().StringVar(&opts.User, "channel-user", "", "Channel basic auth user")
	cmd.Flags().StringVar(&opts.APIKey, "channel-api-key", "", "Channel basic auth key")
	cmd.Flags().IntVar(&opts.Workers, "channel-workers", 0, "Parallel channel fetches")
	cmd.Flags().IntVar(&opts.HTTPTimeout, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry count")
	cmd.Flags().IntVar(&opts.RetryDelayMs, "http-retry-delay-ms", 0, "HTTP retry base delay in ms")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Render platform (linux, osx, win, noarch)")
	cmd.Flags().IntVar(&opts.PyVersion, "py", 0, "Python version for selectors (e.g. 39)")

	_ = viper.BindPFlag("recipe_roots", cmd.Flags().Lookup("recipe-root"))
	_ = viper.BindPFlag("channels", cmd.Flags().Lookup("channel"))
	_ = viper.BindPFlag("subdir", cmd.Flags().Lookup("subdir"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("channel_user", cmd.Flags().Lookup("channel-user"))
	_ = viper.BindPFlag("channel_api_key", cmd.Flags().Lookup("channel-api-key"))
	_ = viper.BindPFlag("channel_workers", cmd.Flags().Lookup("channel-workers"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("py", cmd.Flags().Lookup("py"))

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.Index(ctx, app.IndexRequest{
		RecipeRoots:      resolveStrings(cmd, opts.RecipeRoots, "recipe_roots", "recipe-root"),
		Channels:         resolveStrings(cmd, opts.Channels, "channels", "channel"),
		Subdir:           resolveString(cmd, opts.Subdir, "subdir", "subdir"),
		Output:           resolveString(cmd, opts.Output, "output", "output"),
		User:             resolveString(cmd, opts.User, "channel_user", "channel-user"),
		APIKey:           resolveString(cmd, opts.APIKey, "channel_api_key", "channel-api-key"),
		Workers:          resolveInt(cmd, opts.Workers, "channel_workers", "channel-workers"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeout, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.RetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
		Platform:         resolveString(cmd, opts.Platform, "platform", "platform"),
		PyVersion:        resolveInt(cmd, opts.PyVersion, "py", "py"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("indexed: %d packages, %d entries -> %s\n", result.PackageCount, result.EntryCount, result.OutputPath)
	return nil
}
