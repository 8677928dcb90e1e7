package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/ports"
)

func (s Service) Index(ctx context.Context, req IndexRequest) (IndexResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return IndexResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index output path is required")
	}
	if len(req.RecipeRoots) == 0 && len(req.Channels) == 0 {
		return IndexResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index build requires recipe roots or channels")
	}
	index, err := s.IndexBuilder.Build(ctx, ports.IndexBuildRequest{
		RecipeRoots:      req.RecipeRoots,
		Channels:         req.Channels,
		Subdir:           req.Subdir,
		User:             req.User,
		APIKey:           req.APIKey,
		Workers:          req.Workers,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
		Platform:         req.Platform,
		PyVersion:        req.PyVersion,
	})
	if err != nil {
		return IndexResult{}, err
	}
	if err := s.IndexWriter.Write(output, index); err != nil {
		return IndexResult{}, err
	}
	entryCount := 0
	for _, entries := range index.Packages {
		entryCount += len(entries)
	}
	return IndexResult{
		OutputPath:   output,
		PackageCount: len(index.Packages),
		EntryCount:   entryCount,
	}, nil
}
