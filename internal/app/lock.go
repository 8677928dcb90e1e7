package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/adapters"
	"condarecipe/internal/core"
	"condarecipe/internal/policies"
	"condarecipe/internal/types"
)

func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	recipePath := strings.TrimSpace(req.RecipePath)
	if recipePath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe path is required")
	}
	indexPath := strings.TrimSpace(req.IndexPath)
	if indexPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel index file is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	recipe, err := s.Recipes.Load(recipePath, renderContext(req.Platform, req.PyVersion, nil))
	if err != nil {
		return LockResult{}, err
	}
	validator := core.NewRecipeValidator()
	if err := validator.ValidateRecipe(ctx, recipe); err != nil {
		return LockResult{}, err
	}

	var config types.LockConfig
	if configPath := strings.TrimSpace(req.ConfigPath); configPath != "" {
		config, err = s.LockConfig.Load(configPath)
		if err != nil {
			return LockResult{}, err
		}
		emitHints(checkLockConfigHints(req, config))
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = strings.TrimSpace(config.Channel)
	}
	subdir := strings.TrimSpace(req.Subdir)
	if subdir == "" {
		subdir = strings.TrimSpace(config.Subdir)
	}
	if subdir == "" {
		subdir = "noarch"
	}

	deps, err := recipeDependencies(recipe)
	if err != nil {
		return LockResult{}, err
	}
	if req.MergeSections {
		deps = core.MergeAcrossSections(deps)
	}

	policy := policies.NewPinningPolicy(config.Pins)
	resolver := core.NewResolverCore(adapters.NewChannelIndexFileAdapter(indexPath), policy)
	result, err := resolver.Resolve(ctx, deps, config.Resolutions)
	if err != nil {
		return LockResult{}, err
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteLockFile(result.Entries); err != nil {
		return LockResult{}, err
	}
	if err := output.WriteEnvSpec(buildEnvSpec(recipe.Package.Name, channel, result.Entries)); err != nil {
		return LockResult{}, err
	}
	lockID := strings.TrimSpace(req.LockID)
	if lockID == "" {
		lockID = buildLockID(recipe.Package.Name, channel, subdir, result.Entries)
	}
	intent := buildLockIntent(recipe.Package.Name, channel, subdir, lockID, s.Clock)
	if err := output.WriteLockIntent(intent); err != nil {
		return LockResult{}, err
	}
	if err := output.WriteResolutionReport(result.Resolution); err != nil {
		return LockResult{}, err
	}
	return LockResult{
		PackageName: recipe.Package.Name,
		LockID:      lockID,
		OutputDir:   outputDir,
		EntryCount:  len(result.Entries),
	}, nil
}

// recipeDependencies flattens the recipe's requirement sections into
// one dependency list, test requirements included.
func recipeDependencies(recipe types.Recipe) ([]types.Dependency, error) {
	var deps []types.Dependency
	sections := []struct {
		entries []string
		section types.DependencySection
	}{
		{recipe.Requirements.Build, types.SectionBuild},
		{recipe.Requirements.Host, types.SectionHost},
		{recipe.Requirements.Run, types.SectionRun},
		{recipe.Test.Requires, types.SectionTest},
	}
	for _, s := range sections {
		parsed, err := core.ParseSection(s.entries, s.section)
		if err != nil {
			return nil, err
		}
		deps = append(deps, parsed...)
	}
	return deps, nil
}

func buildEnvSpec(name string, channel string, entries []types.LockEntry) types.EnvSpec {
	spec := types.EnvSpec{Name: name}
	if channel != "" {
		spec.Channels = []string{channel}
	}
	for _, entry := range entries {
		if entry.Section != types.SectionRun {
			continue
		}
		spec.Dependencies = append(spec.Dependencies, fmt.Sprintf("%s=%s", entry.Package, entry.Version))
	}
	sort.Strings(spec.Dependencies)
	return spec
}

func buildLockIntent(name string, channel string, subdir string, lockID string, clock func() time.Time) types.LockIntent {
	now := time.Now().UTC()
	if clock != nil {
		now = clock().UTC()
	}
	return types.LockIntent{
		Recipe:    name,
		Channel:   channel,
		Subdir:    subdir,
		LockID:    lockID,
		CreatedAt: now.Format(time.RFC3339),
	}
}

// buildLockID derives a content id over the resolved entries, so two
// runs against the same index produce the same id.
func buildLockID(name string, channel string, subdir string, entries []types.LockEntry) string {
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Section != ordered[j].Section {
			return ordered[i].Section < ordered[j].Section
		}
		return ordered[i].Package < ordered[j].Package
	})
	var builder strings.Builder
	builder.WriteString(name)
	builder.WriteString("\n")
	builder.WriteString(channel)
	builder.WriteString("\n")
	builder.WriteString(subdir)
	builder.WriteString("\n")
	for _, entry := range ordered {
		builder.WriteString(string(entry.Section))
		builder.WriteString(" ")
		builder.WriteString(entry.Package)
		builder.WriteString("=")
		builder.WriteString(entry.Version)
		builder.WriteString("=")
		builder.WriteString(entry.Build)
		builder.WriteString("\n")
	}
	sum := sha256.Sum256([]byte(builder.String()))
	return fmt.Sprintf("%s-%s", name, hex.EncodeToString(sum[:])[:12])
}
