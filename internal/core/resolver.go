package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"condarecipe/internal/policies"
	"condarecipe/internal/ports"
	"condarecipe/internal/types"
)

type ResolverCore struct {
	Index  ports.ChannelIndexPort
	Policy policies.PinningPolicy
}

type LockResult struct {
	Entries    []types.LockEntry
	Resolution types.ResolutionReport
}

var sectionOrder = map[types.DependencySection]int{
	types.SectionBuild: 0,
	types.SectionHost:  1,
	types.SectionRun:   2,
	types.SectionTest:  3,
}

func NewResolverCore(index ports.ChannelIndexPort, policy policies.PinningPolicy) ResolverCore {
	return ResolverCore{
		Index:  index,
		Policy: policy,
	}
}

// Resolve picks one concrete build per dependency per section. Pin
// groups add constraints before resolution; resolution directives are
// consulted when constraints conflict, except block directives, which
// exclude the dependency up front.
func (r ResolverCore) Resolve(ctx context.Context, deps []types.Dependency, directives []types.ResolutionDirective) (LockResult, error) {
	if r.Index == nil {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a channel index")
	}

	merged := mergeDependencies(deps)
	directiveMap := mapDirectives(directives)

	result := LockResult{
		Resolution: types.ResolutionReport{Records: []types.ResolutionRecord{}},
	}

	for _, dep := range merged {
		assert.NotEmpty(ctx, dep.Name, "dependency name must be set")

		if directive, ok := directiveFor(dep, directiveMap); ok && strings.EqualFold(directive.Action, policies.ActionBlock) {
			result.Resolution.Records = append(result.Resolution.Records, types.ResolutionRecord(directive))
			log.Ctx(ctx).Debug().Str("dependency", dep.Name).Msg("dependency excluded by block directive")
			continue
		}

		pinned, err := r.applyPins(dep)
		if err != nil {
			return LockResult{}, err
		}
		entry, record, err := r.resolveDependency(ctx, pinned, directiveMap)
		if err != nil {
			return LockResult{}, err
		}
		if record.Action != "" {
			result.Resolution.Records = append(result.Resolution.Records, record)
		}
		result.Entries = append(result.Entries, types.LockEntry{
			Section: dep.Section,
			Package: dep.Name,
			Version: entry.Version,
			Build:   entry.BuildString,
		})
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		if result.Entries[i].Section != result.Entries[j].Section {
			return sectionOrder[result.Entries[i].Section] < sectionOrder[result.Entries[j].Section]
		}
		return result.Entries[i].Package < result.Entries[j].Package
	})

	log.Ctx(ctx).Debug().Int("resolved", len(result.Entries)).Msg("resolver completed")
	return result, nil
}

// applyPins appends the constraints of the first matching pin group.
// Pin specs naming a different package than the matched dependency are
// ignored.
func (r ResolverCore) applyPins(dep types.Dependency) (types.Dependency, error) {
	group, ok := r.Policy.Match(dep.Section, dep.Name)
	if !ok {
		return dep, nil
	}
	for _, pin := range group.Pins {
		parsed, err := ParseMatchSpec(pin, dep.Section, fmt.Sprintf("pin:%s", group.Name))
		if err != nil {
			return types.Dependency{}, err
		}
		if parsed.Name != dep.Name {
			continue
		}
		dep.Constraints = append(dep.Constraints, parsed.Constraints...)
		if parsed.Build != "" && dep.Build == "" {
			dep.Build = parsed.Build
		}
	}
	return dep, nil
}

func (r ResolverCore) resolveDependency(ctx context.Context, dep types.Dependency, directiveMap map[string]types.ResolutionDirective) (types.IndexEntry, types.ResolutionRecord, error) {
	available, err := r.Index.AvailableVersions(dep.Name)
	if err != nil {
		return types.IndexEntry{}, types.ResolutionRecord{}, err
	}
	entry, err := bestCompatibleEntry(dep, available)
	if err == nil {
		return entry, types.ResolutionRecord{}, nil
	}

	directive, ok := directiveFor(dep, directiveMap)
	if !ok {
		return types.IndexEntry{}, types.ResolutionRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conflict without resolution directive: %s", dep.Name)).
			WithCause(err)
	}

	updated, record, err := policies.ApplyResolution(dep, directive)
	if err != nil {
		return types.IndexEntry{}, record, err
	}
	available, err = r.Index.AvailableVersions(updated.Name)
	if err != nil {
		return types.IndexEntry{}, record, err
	}
	entry, err = bestCompatibleEntry(updated, available)
	if err != nil {
		return types.IndexEntry{}, record, err
	}
	log.Ctx(ctx).Debug().Str("dependency", dep.Name).Msg("resolution directive applied")
	return entry, record, nil
}

// mergeDependencies folds duplicate (section, name) pairs into one
// dependency carrying the union of constraints. Order is deterministic:
// section order, then name.
func mergeDependencies(deps []types.Dependency) []types.Dependency {
	type key struct {
		section types.DependencySection
		name    string
	}
	merged := map[key]types.Dependency{}
	for _, dep := range deps {
		k := key{section: dep.Section, name: dep.Name}
		existing, ok := merged[k]
		if !ok {
			merged[k] = dep
			continue
		}
		existing.Constraints = append(existing.Constraints, dep.Constraints...)
		if existing.Build == "" {
			existing.Build = dep.Build
		}
		merged[k] = existing
	}
	out := make([]types.Dependency, 0, len(merged))
	for _, dep := range merged {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return sectionOrder[out[i].Section] < sectionOrder[out[j].Section]
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// mergePriority ranks sections for cross-section folding: a dependency
// named in several sections lands in the strongest one.
var mergePriority = map[types.DependencySection]int{
	types.SectionRun:   0,
	types.SectionHost:  1,
	types.SectionBuild: 2,
	types.SectionTest:  3,
}

// MergeAcrossSections folds dependencies sharing a name into a single
// entry, placed in the highest-priority section among its occurrences
// (run > host > build > test) and carrying the union of constraints.
// Sections of the surviving entries keep the usual output order.
func MergeAcrossSections(deps []types.Dependency) []types.Dependency {
	merged := map[string]types.Dependency{}
	for _, dep := range deps {
		existing, ok := merged[dep.Name]
		if !ok {
			merged[dep.Name] = dep
			continue
		}
		if mergePriority[dep.Section] < mergePriority[existing.Section] {
			existing.Section = dep.Section
		}
		existing.Constraints = append(existing.Constraints, dep.Constraints...)
		if existing.Build == "" {
			existing.Build = dep.Build
		}
		merged[dep.Name] = existing
	}
	out := make([]types.Dependency, 0, len(merged))
	for _, dep := range merged {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return sectionOrder[out[i].Section] < sectionOrder[out[j].Section]
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func mapDirectives(directives []types.ResolutionDirective) map[string]types.ResolutionDirective {
	out := map[string]types.ResolutionDirective{}
	for _, directive := range directives {
		key := normalizeDirectiveKey(directive.Dependency)
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = directive
		}
	}
	return out
}

func directiveFor(dep types.Dependency, directiveMap map[string]types.ResolutionDirective) (types.ResolutionDirective, bool) {
	if directive, ok := directiveMap[normalizeDirectiveKey(fmt.Sprintf("%s:%s", dep.Section, dep.Name))]; ok {
		return directive, true
	}
	directive, ok := directiveMap[normalizeDirectiveKey(dep.Name)]
	return directive, ok
}

func normalizeDirectiveKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
