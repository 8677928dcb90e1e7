package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func validRecipe() types.Recipe {
	return types.Recipe{
		Package: types.PackageSection{Name: "openmmtools", Version: "0.23.1"},
		Source:  types.SourceSection{Path: "../.."},
		Build:   types.BuildSection{Number: 0, PreserveEggDir: true},
		Requirements: types.RequirementsSection{
			Build: []string{"python", "setuptools"},
			Run:   []string{"python", "numpy >=1.14", "scipy", "openmm >=7.7"},
		},
		Test: types.TestSection{
			Requires: []string{"nose", "pymbar"},
			Imports:  []string{"openmmtools"},
		},
		About: types.AboutSection{
			Home:    "https://github.com/choderalab/openmmtools",
			License: "MIT",
		},
	}
}

func TestValidateRecipe(t *testing.T) {
	validator := NewRecipeValidator()
	require.NoError(t, validator.ValidateRecipe(t.Context(), validRecipe()))
}

func TestValidateRecipeFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Recipe)
		message string
	}{
		{"missing name", func(r *types.Recipe) { r.Package.Name = "" }, "package.name"},
		{"bad name", func(r *types.Recipe) { r.Package.Name = "OpenMMTools!" }, "package.name"},
		{"missing version", func(r *types.Recipe) { r.Package.Version = "" }, "package.version"},
		{"bad version", func(r *types.Recipe) { r.Package.Version = "not a version" }, "package.version"},
		{"no source", func(r *types.Recipe) { r.Source = types.SourceSection{} }, "source"},
		{"two sources", func(r *types.Recipe) { r.Source.URL = "https://example.org/a.tar.gz"; r.Source.SHA256 = strings.Repeat("a", 64) }, "source"},
		{"url without sha", func(r *types.Recipe) { r.Source = types.SourceSection{URL: "https://example.org/a.tar.gz"} }, "sha256"},
		{"bad sha", func(r *types.Recipe) {
			r.Source = types.SourceSection{URL: "https://example.org/a.tar.gz", SHA256: "abc"}
		}, "sha256"},
		{"git without rev", func(r *types.Recipe) { r.Source = types.SourceSection{GitURL: "https://example.org/r.git"} }, "git_rev"},
		{"negative build number", func(r *types.Recipe) { r.Build.Number = -1 }, "build.number"},
		{"bad noarch", func(r *types.Recipe) { r.Build.NoArch = "universal" }, "noarch"},
		{"bad entry point", func(r *types.Recipe) { r.Build.EntryPoints = []string{"broken"} }, "entry_points"},
		{"bad run spec", func(r *types.Recipe) { r.Requirements.Run = append(r.Requirements.Run, ">=1.0") }, "name"},
		{"bad test spec", func(r *types.Recipe) { r.Test.Requires = []string{"nose >="} }, "clause"},
		{"bad home", func(r *types.Recipe) { r.About.Home = "not-a-url" }, "about.home"},
	}

	validator := NewRecipeValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := validRecipe()
			tt.mutate(&recipe)
			err := validator.ValidateRecipe(t.Context(), recipe)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}
