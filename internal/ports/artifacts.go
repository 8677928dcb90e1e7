package ports

import (
	"context"

	"condarecipe/internal/types"
)

// ArtifactStorePort lists and deletes built package files in a local
// channel directory.
type ArtifactStorePort interface {
	ListArtifacts(ctx context.Context) ([]types.ArtifactInfo, error)
	DeleteArtifact(ctx context.Context, path string) error
}
