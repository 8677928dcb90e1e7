package types

type LockEntry struct {
	Section DependencySection
	Package string
	Version string
	Build   string
}

// LockIntent records what a lock run produced: which channel it was
// resolved against and a content-derived id over the sorted entries.
type LockIntent struct {
	Recipe    string
	Channel   string
	Subdir    string
	LockID    string
	CreatedAt string
}

type ResolutionRecord struct {
	Dependency string
	Action     string
	Value      string
	Reason     string
	Owner      string
	ExpiresAt  string
}

type ResolutionReport struct {
	Records []ResolutionRecord
}

// EnvSpec is the conda environment file emitted alongside the lock,
// restricted to run-section packages.
type EnvSpec struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []string `yaml:"dependencies"`
}
