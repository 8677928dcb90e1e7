package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/ports"
	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

// ArtifactStoreFileAdapter manages the package files of one local
// channel subdirectory.
type ArtifactStoreFileAdapter struct {
	Dir string
}

func NewArtifactStoreFileAdapter(dir string) ArtifactStoreFileAdapter {
	return ArtifactStoreFileAdapter{Dir: dir}
}

func (a ArtifactStoreFileAdapter) ListArtifacts(ctx context.Context) ([]types.ArtifactInfo, error) {
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifacts directory not found").
			WithCause(err)
	}
	var artifacts []types.ArtifactInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem, ok := trimArchiveSuffix(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to stat artifact").
				WithCause(err)
		}
		artifact := types.ArtifactInfo{
			Path:    filepath.Join(a.Dir, entry.Name()),
			ModTime: info.ModTime(),
		}
		artifact.Package, artifact.Version, artifact.BuildString = splitArtifactStem(stem)
		artifacts = append(artifacts, artifact)
	}
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Path < artifacts[j].Path
	})
	return artifacts, nil
}

func (a ArtifactStoreFileAdapter) DeleteArtifact(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete artifact").
			WithCause(err)
	}
	return nil
}

func trimArchiveSuffix(name string) (string, bool) {
	if strings.HasSuffix(name, ".tar.bz2") {
		return strings.TrimSuffix(name, ".tar.bz2"), true
	}
	if strings.HasSuffix(name, ".conda") {
		return strings.TrimSuffix(name, ".conda"), true
	}
	return "", false
}

// splitArtifactStem splits "name-version-build" from the right, since
// package names may themselves contain dashes.
func splitArtifactStem(stem string) (string, string, string) {
	buildIdx := strings.LastIndex(stem, "-")
	if buildIdx <= 0 {
		return shared.NormalizePackageName(stem), "", ""
	}
	build := stem[buildIdx+1:]
	rest := stem[:buildIdx]
	versionIdx := strings.LastIndex(rest, "-")
	if versionIdx <= 0 {
		return shared.NormalizePackageName(rest), build, ""
	}
	return shared.NormalizePackageName(rest[:versionIdx]), rest[versionIdx+1:], build
}

var _ ports.ArtifactStorePort = ArtifactStoreFileAdapter{}
