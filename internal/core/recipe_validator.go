package core

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"condarecipe/internal/types"
)

type RecipeValidator struct{}

func NewRecipeValidator() RecipeValidator {
	return RecipeValidator{}
}

var packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
var sha256Pattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

var validNoArch = map[string]struct{}{
	"python":  {},
	"generic": {},
}

// ValidateRecipe enforces the schema-level properties of a recipe:
// identity fields present and well formed, exactly one source form,
// sane build flags, and every dependency specifier syntactically valid.
func (v RecipeValidator) ValidateRecipe(ctx context.Context, recipe types.Recipe) error {
	if strings.TrimSpace(recipe.Package.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package.name must be set")
	}
	if !packageNamePattern.MatchString(recipe.Package.Name) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package.name is not a valid package name: %s", recipe.Package.Name))
	}
	if strings.TrimSpace(recipe.Package.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package.version must be set")
	}
	if _, err := pep440.Parse(recipe.Package.Version); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package.version is not a valid version: %s", recipe.Package.Version)).
			WithCause(err)
	}
	if err := validateSource(recipe.Source); err != nil {
		return err
	}
	if err := validateBuild(recipe.Build); err != nil {
		return err
	}
	for section, entries := range map[types.DependencySection][]string{
		types.SectionBuild: recipe.Requirements.Build,
		types.SectionHost:  recipe.Requirements.Host,
		types.SectionRun:   recipe.Requirements.Run,
		types.SectionTest:  recipe.Test.Requires,
	} {
		if err := validateSpecifiers(entries, section); err != nil {
			return err
		}
	}
	if err := validateAbout(recipe.About); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("recipe", recipe.Package.Name).Msg("recipe validated")
	return nil
}

func validateSource(source types.SourceSection) error {
	forms := 0
	if strings.TrimSpace(source.Path) != "" {
		forms++
	}
	if strings.TrimSpace(source.URL) != "" {
		forms++
	}
	if strings.TrimSpace(source.GitURL) != "" {
		forms++
	}
	if forms == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source must set one of path, url, or git_url")
	}
	if forms > 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source must set only one of path, url, or git_url")
	}
	if source.URL != "" && source.SHA256 == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source.sha256 is required with source.url")
	}
	if source.SHA256 != "" && !sha256Pattern.MatchString(source.SHA256) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source.sha256 must be 64 lowercase hex characters")
	}
	if source.GitURL != "" && strings.TrimSpace(source.GitRev) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source.git_rev is required with source.git_url")
	}
	return nil
}

func validateBuild(build types.BuildSection) error {
	if build.Number < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build.number must not be negative")
	}
	if build.NoArch != "" {
		if _, ok := validNoArch[build.NoArch]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("build.noarch must be python or generic, got %s", build.NoArch))
		}
	}
	for _, entry := range build.EntryPoints {
		if !strings.Contains(entry, "=") {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("build.entry_points entry missing '=': %s", entry))
		}
	}
	return nil
}

func validateSpecifiers(entries []string, section types.DependencySection) error {
	for _, entry := range entries {
		dep, err := ParseMatchSpec(entry, section, fmt.Sprintf("requirements:%s", section))
		if err != nil {
			return err
		}
		spec := ConstraintSpecifiers(dep.Constraints)
		if spec == "" {
			continue
		}
		if _, err := pep440.NewSpecifiers(spec); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version constraint in %s: %s", section, entry)).
				WithCause(err)
		}
	}
	return nil
}

func validateAbout(about types.AboutSection) error {
	if about.Home == "" {
		return nil
	}
	parsed, err := url.Parse(about.Home)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("about.home must be an http(s) URL: %s", about.Home))
	}
	return nil
}
