package app

import "condarecipe/internal/types"

type ValidateRequest struct {
	RecipePath string
	Platform   string
	PyVersion  int
}

type ValidateResult struct {
	PackageName string
	Version     string
}

type LintRequest struct {
	RecipePath string
	Platform   string
	PyVersion  int
	Strict     bool
}

type LintResult struct {
	PackageName string
	Findings    []string
}

type RenderRequest struct {
	RecipePath string
	Platform   string
	PyVersion  int
	Vars       map[string]string
	OutputDir  string
}

type RenderResult struct {
	Text      string
	OutputDir string
}

type LockRequest struct {
	RecipePath    string
	ConfigPath    string
	IndexPath     string
	OutputDir     string
	Channel       string
	Subdir        string
	Platform      string
	PyVersion     int
	LockID        string
	MergeSections bool
}

type LockResult struct {
	PackageName string
	LockID      string
	OutputDir   string
	EntryCount  int
}

type IndexRequest struct {
	RecipeRoots      []string
	Channels         []string
	Subdir           string
	Output           string
	User             string
	APIKey           string
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
	Platform         string
	PyVersion        int
}

type IndexResult struct {
	OutputPath   string
	PackageCount int
	EntryCount   int
}

type VerifyRequest struct {
	RecipePath    string
	ArchivePath   string
	SignaturePath string
	PublicKeyPath string
	Platform      string
	PyVersion     int
}

type VerifyResult struct {
	PackageName      string
	SignatureChecked bool
}

type UploadRequest struct {
	Endpoint     string
	ArtifactsDir string
	Subdir       string
	User         string
	APIKey       string
	Workers      int
	TimeoutSec   int
	Retries      int
	RetryDelayMs int
}

type UploadResult struct {
	Endpoint string
	Subdir   string
}

type InspectRequest struct {
	OutputDir string
}

type InspectSectionSummary struct {
	Section  types.DependencySection
	Count    int
	Packages []string
}

type InspectResult struct {
	LockEntryCount int
	Sections       []InspectSectionSummary
	Intent         types.LockIntent
}

type PruneRequest struct {
	ArtifactsDir string
	KeepLast     int
	KeepDays     int
	ProtectNames []string
	DryRun       bool
}

type PruneResult struct {
	KeepCount   int
	DeleteCount int
	Deleted     []string
	DryRun      bool
}
