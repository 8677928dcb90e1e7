package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/adapters"
	"condarecipe/internal/types"
)

func (s Service) PruneArtifacts(ctx context.Context, req PruneRequest) (PruneResult, error) {
	artifactsDir := strings.TrimSpace(req.ArtifactsDir)
	if artifactsDir == "" {
		return PruneResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifacts directory is required")
	}
	store := adapters.NewArtifactStoreFileAdapter(artifactsDir)
	artifacts, err := store.ListArtifacts(ctx)
	if err != nil {
		return PruneResult{}, err
	}
	policy := types.ArtifactRetentionPolicy{
		KeepLast:     req.KeepLast,
		KeepDays:     req.KeepDays,
		ProtectNames: req.ProtectNames,
		DryRun:       req.DryRun,
	}
	now := timeNow(s.Clock)
	plan := BuildArtifactPrunePlan(artifacts, policy, now)
	if policy.DryRun {
		return PruneResult{
			KeepCount:   len(plan.Keep),
			DeleteCount: len(plan.Delete),
			DryRun:      true,
		}, nil
	}
	var deleted []string
	for _, artifact := range plan.Delete {
		if err := store.DeleteArtifact(ctx, artifact.Path); err != nil {
			return PruneResult{}, err
		}
		deleted = append(deleted, artifact.Path)
	}
	return PruneResult{
		KeepCount:   len(plan.Keep),
		DeleteCount: len(deleted),
		Deleted:     deleted,
		DryRun:      false,
	}, nil
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
