package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// during constraint evaluation and sorting.
type versionCache struct {
	versions   map[string]pep440.Version
	specifiers map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		versions:   map[string]pep440.Version{},
		specifiers: map[string]pep440.Specifiers{},
	}
}

func (c *versionCache) version(value string) (pep440.Version, error) {
	if parsed, ok := c.versions[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.versions[value] = parsed
	return parsed, nil
}

func (c *versionCache) specifier(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.specifiers[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specifiers[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings. Returns 0
// on parse errors.
func (c *versionCache) compare(a string, b string) int {
	v1, err := c.version(a)
	if err != nil {
		return 0
	}
	v2, err := c.version(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}

// ConstraintSpecifiers renders constraints as a PEP 440 specifier set
// string (">= 1.8, < 2"). Returns "" for an unconstrained dependency.
func ConstraintSpecifiers(constraints []types.Constraint) string {
	var clauses []string
	for _, constraint := range constraints {
		if constraint.Op == types.ConstraintOpNone {
			continue
		}
		op := string(constraint.Op)
		if constraint.Op == types.ConstraintOpEq {
			op = "=="
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", op, constraint.Version))
	}
	return strings.Join(clauses, ", ")
}

// bestCompatibleEntry selects the entry with the highest version (then
// highest build number) from available that satisfies the dependency's
// constraints and build-string pattern. Returns an error if no
// compatible entry exists.
func bestCompatibleEntry(dep types.Dependency, available []types.IndexEntry) (types.IndexEntry, error) {
	if len(available) == 0 {
		return types.IndexEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", dep.Name))
	}
	cache := newVersionCache()
	spec := ConstraintSpecifiers(dep.Constraints)
	var specifiers pep440.Specifiers
	if spec != "" {
		parsed, err := cache.specifier(spec)
		if err != nil {
			return types.IndexEntry{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid constraints for %s: %s", dep.Name, spec)).
				WithCause(err)
		}
		specifiers = parsed
	}

	var candidates []types.IndexEntry
	for _, entry := range available {
		if !shared.MatchesBuildString(dep.Build, entry.BuildString) {
			continue
		}
		if spec != "" {
			version, err := cache.version(entry.Version)
			if err != nil {
				continue
			}
			if !specifiers.Check(version) {
				continue
			}
		}
		candidates = append(candidates, entry)
	}
	if len(candidates) == 0 {
		return types.IndexEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s", dep.Name))
	}
	sort.Slice(candidates, func(i, j int) bool {
		if cmp := cache.compare(candidates[i].Version, candidates[j].Version); cmp != 0 {
			return cmp > 0
		}
		return candidates[i].BuildNumber > candidates[j].BuildNumber
	})
	return candidates[0], nil
}

// SortVersionsDescending orders entries newest first, for deterministic
// index output.
func SortVersionsDescending(entries []types.IndexEntry) {
	cache := newVersionCache()
	sort.Slice(entries, func(i, j int) bool {
		if cmp := cache.compare(entries[i].Version, entries[j].Version); cmp != 0 {
			return cmp > 0
		}
		if entries[i].BuildNumber != entries[j].BuildNumber {
			return entries[i].BuildNumber > entries[j].BuildNumber
		}
		return entries[i].BuildString < entries[j].BuildString
	})
}
