package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/adapters"
)

func (s Service) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	endpoint := strings.TrimSpace(req.Endpoint)
	if endpoint == "" {
		return UploadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel endpoint is required")
	}
	subdir := strings.TrimSpace(req.Subdir)
	if subdir == "" {
		return UploadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel subdir is required")
	}
	artifactsDir := strings.TrimSpace(req.ArtifactsDir)
	if artifactsDir == "" {
		return UploadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifacts directory is required")
	}
	uploader := adapters.NewChannelUploadAdapter(
		endpoint,
		artifactsDir,
		req.User,
		req.APIKey,
		req.Workers,
		req.TimeoutSec,
		req.Retries,
		req.RetryDelayMs,
	)
	if err := uploader.Upload(ctx, subdir); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Endpoint: endpoint, Subdir: subdir}, nil
}
