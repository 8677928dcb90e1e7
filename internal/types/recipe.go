package types

type PackageSection struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// SourceSection locates the sources the recipe packages. Exactly one
// form must be set: a local path, a URL (with sha256), or a git ref.
type SourceSection struct {
	Path   string `yaml:"path,omitempty"`
	URL    string `yaml:"url,omitempty"`
	SHA256 string `yaml:"sha256,omitempty"`
	GitURL string `yaml:"git_url,omitempty"`
	GitRev string `yaml:"git_rev,omitempty"`
}

type BuildSection struct {
	Number         int      `yaml:"number"`
	PreserveEggDir bool     `yaml:"preserve_egg_dir,omitempty"`
	NoArch         string   `yaml:"noarch,omitempty"`
	Script         string   `yaml:"script,omitempty"`
	EntryPoints    []string `yaml:"entry_points,omitempty"`
}

// RequirementsSection holds the per-environment dependency specifier
// lists. Host is optional; old-style recipes fold compiled deps into
// Build.
type RequirementsSection struct {
	Build []string `yaml:"build,omitempty"`
	Host  []string `yaml:"host,omitempty"`
	Run   []string `yaml:"run,omitempty"`
}

type TestSection struct {
	Requires []string `yaml:"requires,omitempty"`
	Imports  []string `yaml:"imports,omitempty"`
	Commands []string `yaml:"commands,omitempty"`
}

type AboutSection struct {
	Home        string `yaml:"home,omitempty"`
	License     string `yaml:"license,omitempty"`
	LicenseFile string `yaml:"license_file,omitempty"`
	Summary     string `yaml:"summary,omitempty"`
}

type ExtraSection struct {
	Maintainers []string `yaml:"maintainers,omitempty"`
}

// Recipe is the decoded form of a meta.yaml build recipe after selector
// and template preprocessing.
type Recipe struct {
	Package      PackageSection      `yaml:"package"`
	Source       SourceSection       `yaml:"source,omitempty"`
	Build        BuildSection        `yaml:"build,omitempty"`
	Requirements RequirementsSection `yaml:"requirements,omitempty"`
	Test         TestSection         `yaml:"test,omitempty"`
	About        AboutSection        `yaml:"about,omitempty"`
	Extra        ExtraSection        `yaml:"extra,omitempty"`
}

// RenderContext carries the inputs that influence rendering: the target
// platform for selectors and the variable table for template
// substitution. Name and version from `{% set %}` lines are merged in
// during preprocessing.
type RenderContext struct {
	Platform  string
	PyVersion int
	Vars      map[string]string
}

// PinGroup attaches extra version pins to dependencies matched by
// pattern. Patterns are exact names, "prefix*", or "*", optionally
// qualified by section ("run:numpy*"). First matching group wins.
type PinGroup struct {
	Name    string   `yaml:"name"`
	Matches []string `yaml:"matches"`
	Pins    []string `yaml:"pins,omitempty"`
}

type ResolutionDirective struct {
	Dependency string `yaml:"dependency"`
	Action     string `yaml:"action"`
	Value      string `yaml:"value,omitempty"`
	Reason     string `yaml:"reason"`
	Owner      string `yaml:"owner"`
	ExpiresAt  string `yaml:"expires_at,omitempty"`
}

// LockConfig is the optional side file consumed by the lock operation.
// It is separate from the recipe because pinning policy belongs to the
// environment being built, not to the package being described.
type LockConfig struct {
	Channel     string                `yaml:"channel,omitempty"`
	Subdir      string                `yaml:"subdir,omitempty"`
	Pins        []PinGroup            `yaml:"pins,omitempty"`
	Resolutions []ResolutionDirective `yaml:"resolutions,omitempty"`
}
