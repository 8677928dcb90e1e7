package ports

import (
	"context"

	"condarecipe/internal/types"
)

type ChannelIndexPort interface {
	AvailableVersions(name string) ([]types.IndexEntry, error)
}

// IndexBuildRequest describes where to collect package versions from:
// local recipe trees, remote channels, or both.
type IndexBuildRequest struct {
	RecipeRoots      []string
	Channels         []string
	Subdir           string
	User             string
	APIKey           string
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
	Platform         string
	PyVersion        int
}

type ChannelIndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.ChannelIndexFile, error)
}

type ChannelIndexWriterPort interface {
	Write(path string, index types.ChannelIndexFile) error
}
