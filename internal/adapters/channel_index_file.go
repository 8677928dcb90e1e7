package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condarecipe/internal/ports"
	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

type ChannelIndexFileAdapter struct {
	Path   string
	cached types.ChannelIndexFile
	loaded bool
}

func NewChannelIndexFileAdapter(path string) *ChannelIndexFileAdapter {
	return &ChannelIndexFileAdapter{Path: path}
}

func (a *ChannelIndexFileAdapter) AvailableVersions(name string) ([]types.IndexEntry, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}
	if entries, ok := index.Packages[name]; ok && len(entries) > 0 {
		return entries, nil
	}
	normalized := shared.NormalizePackageName(name)
	if normalized != name {
		return index.Packages[normalized], nil
	}
	return index.Packages[name], nil
}

func (a *ChannelIndexFileAdapter) load() (types.ChannelIndexFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.ChannelIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("channel index file not found").
			WithCause(err)
	}
	var index types.ChannelIndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		return types.ChannelIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid channel index format").
			WithCause(err)
	}
	if index.Packages == nil {
		index.Packages = map[string][]types.IndexEntry{}
	}
	a.cached = index
	a.loaded = true
	return index, nil
}

var _ ports.ChannelIndexPort = (*ChannelIndexFileAdapter)(nil)
