package app

import (
	"sort"
	"strings"
	"time"

	"condarecipe/internal/types"
)

// BuildArtifactPrunePlan decides which package files to keep. Protected
// names and files younger than the keep-days window always stay; the
// keep-last count applies per package, newest first.
func BuildArtifactPrunePlan(artifacts []types.ArtifactInfo, policy types.ArtifactRetentionPolicy, now time.Time) types.ArtifactPrunePlan {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	normalized := normalizeRetentionPolicy(policy)
	protected := normalizeSet(normalized.ProtectNames)

	keepPaths := map[string]struct{}{}
	grouped := map[string][]types.ArtifactInfo{}
	for _, artifact := range artifacts {
		if _, ok := protected[strings.ToLower(artifact.Package)]; ok {
			keepPaths[artifact.Path] = struct{}{}
		}
		if normalized.KeepDays > 0 && !artifact.ModTime.IsZero() {
			cutoff := now.AddDate(0, 0, -normalized.KeepDays)
			if !artifact.ModTime.Before(cutoff) {
				keepPaths[artifact.Path] = struct{}{}
			}
		}
		grouped[artifact.Package] = append(grouped[artifact.Package], artifact)
	}

	if normalized.KeepLast > 0 {
		for _, group := range grouped {
			sorted := append([]types.ArtifactInfo(nil), group...)
			sort.Slice(sorted, func(i, j int) bool {
				if !sorted[i].ModTime.Equal(sorted[j].ModTime) {
					return sorted[i].ModTime.After(sorted[j].ModTime)
				}
				return sorted[i].Path < sorted[j].Path
			})
			limit := normalized.KeepLast
			if limit > len(sorted) {
				limit = len(sorted)
			}
			for i := 0; i < limit; i++ {
				keepPaths[sorted[i].Path] = struct{}{}
			}
		}
	}

	var keep []types.ArtifactInfo
	var del []types.ArtifactInfo
	for _, artifact := range artifacts {
		if _, ok := keepPaths[artifact.Path]; ok {
			keep = append(keep, artifact)
		} else {
			del = append(del, artifact)
		}
	}
	return types.ArtifactPrunePlan{Keep: keep, Delete: del}
}

func normalizeRetentionPolicy(policy types.ArtifactRetentionPolicy) types.ArtifactRetentionPolicy {
	normalized := policy
	if normalized.KeepLast < 0 {
		normalized.KeepLast = 0
	}
	if normalized.KeepDays < 0 {
		normalized.KeepDays = 0
	}
	return normalized
}

func normalizeSet(values []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}
