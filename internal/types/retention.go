package types

import "time"

// ArtifactInfo describes one built package file in a local channel
// directory, parsed from its name-version-build filename.
type ArtifactInfo struct {
	Path        string
	Package     string
	Version     string
	BuildString string
	ModTime     time.Time
}

type ArtifactRetentionPolicy struct {
	KeepLast     int
	KeepDays     int
	ProtectNames []string
	DryRun       bool
}

type ArtifactPrunePlan struct {
	Keep   []ArtifactInfo
	Delete []ArtifactInfo
}
