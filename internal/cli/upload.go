package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type uploadOptions struct {
	Endpoint     string
	ArtifactsDir string
	Subdir       string
	User         string
	APIKey       string
	Workers      int
	TimeoutSec   int
	Retries      int
	RetryDelayMs int
}

func newUploadCommand() *cobra.Command {
	opts := uploadOptions{}
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload built package artifacts to a channel server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpload(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Channel server endpoint")
	cmd.Flags().StringVar(&opts.ArtifactsDir, "artifacts", "", "Directory with built packages")
	cmd.Flags().StringVar(&opts.Subdir, "subdir", "", "Platform subdirectory (e.g. linux-64)")
	cmd.Flags().StringVar(&opts.User, "upload-user", "", "Upload basic auth user")
	cmd.Flags().StringVar(&opts.APIKey, "upload-api-key", "", "Upload basic auth key")
	cmd.Flags().IntVar(&opts.Workers, "upload-workers", 0, "Parallel uploads")
	cmd.Flags().IntVar(&opts.TimeoutSec, "upload-timeout", 0, "Upload timeout in seconds")
	cmd.Flags().IntVar(&opts.Retries, "upload-retries", 0, "Upload retry count")
	cmd.Flags().IntVar(&opts.RetryDelayMs, "upload-retry-delay-ms", 0, "Upload retry base delay in ms")

	_ = viper.BindPFlag("endpoint", cmd.Flags().Lookup("endpoint"))
	_ = viper.BindPFlag("artifacts", cmd.Flags().Lookup("artifacts"))
	_ = viper.BindPFlag("subdir", cmd.Flags().Lookup("subdir"))
	_ = viper.BindPFlag("upload_user", cmd.Flags().Lookup("upload-user"))
	_ = viper.BindPFlag("upload_api_key", cmd.Flags().Lookup("upload-api-key"))
	_ = viper.BindPFlag("upload_workers", cmd.Flags().Lookup("upload-workers"))
	_ = viper.BindPFlag("upload_timeout", cmd.Flags().Lookup("upload-timeout"))
	_ = viper.BindPFlag("upload_retries", cmd.Flags().Lookup("upload-retries"))
	_ = viper.BindPFlag("upload_retry_delay_ms", cmd.Flags().Lookup("upload-retry-delay-ms"))

	return cmd
}

func runUpload(ctx context.Context, cmd *cobra.Command, opts uploadOptions) error {
	service := newAppService()
	result, err := service.Upload(ctx, app.UploadRequest{
		Endpoint:     resolveString(cmd, opts.Endpoint, "endpoint", "endpoint"),
		ArtifactsDir: resolveString(cmd, opts.ArtifactsDir, "artifacts", "artifacts"),
		Subdir:       resolveString(cmd, opts.Subdir, "subdir", "subdir"),
		User:         resolveString(cmd, opts.User, "upload_user", "upload-user"),
		APIKey:       resolveString(cmd, opts.APIKey, "upload_api_key", "upload-api-key"),
		Workers:      resolveInt(cmd, opts.Workers, "upload_workers", "upload-workers"),
		TimeoutSec:   resolveInt(cmd, opts.TimeoutSec, "upload_timeout", "upload-timeout"),
		Retries:      resolveInt(cmd, opts.Retries, "upload_retries", "upload-retries"),
		RetryDelayMs: resolveInt(cmd, opts.RetryDelayMs, "upload_retry_delay_ms", "upload-retry-delay-ms"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("uploaded to %s/%s\n", result.Endpoint, result.Subdir)
	return nil
}
