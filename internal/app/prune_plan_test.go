package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func artifactAt(pkg string, version string, age time.Duration, now time.Time) types.ArtifactInfo {
	return types.ArtifactInfo{
		Path:        "/channel/" + pkg + "-" + version + "-py39_0.tar.bz2",
		Package:     pkg,
		Version:     version,
		BuildString: "py39_0",
		ModTime:     now.Add(-age),
	}
}

func TestBuildArtifactPrunePlanKeepLast(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	artifacts := []types.ArtifactInfo{
		artifactAt("openmmtools", "0.21.0", 72*time.Hour, now),
		artifactAt("openmmtools", "0.22.0", 48*time.Hour, now),
		artifactAt("openmmtools", "0.23.1", 24*time.Hour, now),
		artifactAt("yank", "0.25.0", 24*time.Hour, now),
	}
	plan := BuildArtifactPrunePlan(artifacts, types.ArtifactRetentionPolicy{KeepLast: 2}, now)
	require.Len(t, plan.Keep, 3)
	require.Len(t, plan.Delete, 1)
	require.Equal(t, "0.21.0", plan.Delete[0].Version)
}

func TestBuildArtifactPrunePlanKeepDays(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	artifacts := []types.ArtifactInfo{
		artifactAt("openmmtools", "0.21.0", 240*time.Hour, now),
		artifactAt("openmmtools", "0.23.1", 24*time.Hour, now),
	}
	plan := BuildArtifactPrunePlan(artifacts, types.ArtifactRetentionPolicy{KeepDays: 7}, now)
	require.Len(t, plan.Keep, 1)
	require.Equal(t, "0.23.1", plan.Keep[0].Version)
	require.Len(t, plan.Delete, 1)
	require.Equal(t, "0.21.0", plan.Delete[0].Version)
}

func TestBuildArtifactPrunePlanProtectNames(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	artifacts := []types.ArtifactInfo{
		artifactAt("openmmtools", "0.21.0", 240*time.Hour, now),
		artifactAt("yank", "0.20.0", 240*time.Hour, now),
	}
	plan := BuildArtifactPrunePlan(artifacts, types.ArtifactRetentionPolicy{
		KeepLast:     0,
		ProtectNames: []string{"OpenMMTools"},
	}, now)
	require.Len(t, plan.Keep, 1)
	require.Equal(t, "openmmtools", plan.Keep[0].Package)
	require.Len(t, plan.Delete, 1)
	require.Equal(t, "yank", plan.Delete[0].Package)
}

func TestBuildArtifactPrunePlanNegativePolicy(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	artifacts := []types.ArtifactInfo{
		artifactAt("openmmtools", "0.23.1", 24*time.Hour, now),
	}
	plan := BuildArtifactPrunePlan(artifacts, types.ArtifactRetentionPolicy{KeepLast: -1, KeepDays: -1}, now)
	require.Empty(t, plan.Keep)
	require.Len(t, plan.Delete, 1)
}
