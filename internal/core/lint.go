package core

import (
	"fmt"
	"strings"

	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

// LintRecipe returns advisory findings for a recipe that already passed
// validation. Findings never fail a build; the order is stable.
func LintRecipe(recipe types.Recipe) []string {
	var hints []string

	if strings.TrimSpace(recipe.About.Home) == "" {
		hints = append(hints, "about.home is not set")
	}
	if strings.TrimSpace(recipe.About.License) == "" {
		hints = append(hints, "about.license is not set")
	}
	if strings.TrimSpace(recipe.About.Summary) == "" {
		hints = append(hints, "about.summary is not set")
	}
	if len(recipe.Extra.Maintainers) == 0 {
		hints = append(hints, "extra.maintainers is empty")
	}

	sections := []struct {
		name    types.DependencySection
		entries []string
	}{
		{types.SectionBuild, recipe.Requirements.Build},
		{types.SectionHost, recipe.Requirements.Host},
		{types.SectionRun, recipe.Requirements.Run},
		{types.SectionTest, recipe.Test.Requires},
	}
	for _, section := range sections {
		hints = append(hints, lintDuplicates(section.name, section.entries)...)
	}
	hints = append(hints, lintUnconstrainedBuild(recipe.Requirements.Build)...)
	hints = append(hints, lintUnpinnedPython(recipe.Requirements.Run)...)

	if len(recipe.Test.Requires) == 0 && len(recipe.Test.Imports) == 0 && len(recipe.Test.Commands) == 0 {
		hints = append(hints, "test section is empty")
	}
	return hints
}

func lintDuplicates(section types.DependencySection, entries []string) []string {
	seen := map[string]struct{}{}
	var hints []string
	for _, entry := range entries {
		dep, err := ParseMatchSpec(entry, section, "lint")
		if err != nil {
			continue
		}
		if _, ok := seen[dep.Name]; ok {
			hints = append(hints, fmt.Sprintf("duplicate dependency in %s: %s", section, dep.Name))
			continue
		}
		seen[dep.Name] = struct{}{}
	}
	return hints
}

func lintUnconstrainedBuild(build []string) []string {
	var hints []string
	for _, entry := range build {
		dep, err := ParseMatchSpec(entry, types.SectionBuild, "lint")
		if err != nil {
			continue
		}
		if len(dep.Constraints) == 0 && dep.Build == "" {
			hints = append(hints, fmt.Sprintf("build dependency %s has no version constraint", dep.Name))
		}
	}
	return hints
}

func lintUnpinnedPython(run []string) []string {
	for _, entry := range run {
		dep, err := ParseMatchSpec(entry, types.SectionRun, "lint")
		if err != nil {
			continue
		}
		if shared.NormalizePackageName(dep.Name) != "python" {
			continue
		}
		if len(dep.Constraints) == 0 {
			return []string{"run dependency python has no version constraint"}
		}
		return nil
	}
	return nil
}
