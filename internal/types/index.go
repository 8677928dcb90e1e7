package types

// IndexEntry is one installable build of a package known to a channel.
type IndexEntry struct {
	Version     string `yaml:"version"`
	BuildString string `yaml:"build_string,omitempty"`
	BuildNumber int    `yaml:"build_number,omitempty"`
}

// ChannelIndexFile is the on-disk channel index consumed by the lock
// operation and produced by the index operation. Package names are
// normalized (lowercase, underscores and dots to hyphens).
type ChannelIndexFile struct {
	Subdir   string                  `yaml:"subdir,omitempty"`
	Packages map[string][]IndexEntry `yaml:"packages"`
}
