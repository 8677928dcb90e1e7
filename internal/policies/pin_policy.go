package policies

import (
	"strings"

	"condarecipe/internal/types"
)

// PinningPolicy matches dependencies against pin groups from the lock
// config. Patterns are exact names, "prefix*", or "*", optionally
// qualified by section ("run:numpy*"). Exact matches beat prefix
// matches beat wildcards; within one kind the earliest group wins.
type PinningPolicy struct {
	Groups []types.PinGroup

	exactBySection  map[types.DependencySection]map[string]int
	exactAny        map[string]int
	prefixBySection map[types.DependencySection][]prefixPattern
	prefixAny       []prefixPattern
	wildcardBySec   map[types.DependencySection]int
	wildcardAny     int
}

type prefixPattern struct {
	prefix     string
	groupIndex int
}

func NewPinningPolicy(groups []types.PinGroup) PinningPolicy {
	policy := PinningPolicy{
		Groups:      groups,
		wildcardAny: -1,
	}
	policy.compile()
	return policy
}

// Match returns the pin group for a dependency, or false when no group
// applies. Unmatched dependencies are simply left unpinned.
func (p PinningPolicy) Match(section types.DependencySection, name string) (types.PinGroup, bool) {
	best := -1
	if matches, ok := p.exactBySection[section]; ok {
		if idx, found := matches[name]; found {
			best = minIndex(best, idx)
		}
	}
	if idx, found := p.exactAny[name]; found {
		best = minIndex(best, idx)
	}
	if best < 0 {
		for _, entry := range p.prefixBySection[section] {
			if strings.HasPrefix(name, entry.prefix) {
				best = minIndex(best, entry.groupIndex)
			}
		}
		for _, entry := range p.prefixAny {
			if strings.HasPrefix(name, entry.prefix) {
				best = minIndex(best, entry.groupIndex)
			}
		}
	}
	if best < 0 {
		if idx, found := p.wildcardBySec[section]; found {
			best = minIndex(best, idx)
		}
		if p.wildcardAny >= 0 {
			best = minIndex(best, p.wildcardAny)
		}
	}
	if best >= 0 && best < len(p.Groups) {
		return p.Groups[best], true
	}
	return types.PinGroup{}, false
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
	patternInvalid
)

func (p *PinningPolicy) compile() {
	p.exactBySection = map[types.DependencySection]map[string]int{}
	p.exactAny = map[string]int{}
	p.prefixBySection = map[types.DependencySection][]prefixPattern{}
	p.prefixAny = nil
	p.wildcardBySec = map[types.DependencySection]int{}
	p.wildcardAny = -1
	for idx, group := range p.Groups {
		for _, pattern := range group.Matches {
			section, name, kind := parsePattern(pattern)
			switch kind {
			case patternWildcard:
				p.storeWildcard(section, idx)
			case patternExact:
				p.storeExact(section, name, idx)
			case patternPrefix:
				p.storePrefix(section, name, idx)
			}
		}
	}
}

func (p *PinningPolicy) storeExact(section *types.DependencySection, name string, index int) {
	if section == nil {
		if _, ok := p.exactAny[name]; !ok {
			p.exactAny[name] = index
		}
		return
	}
	if p.exactBySection[*section] == nil {
		p.exactBySection[*section] = map[string]int{}
	}
	if _, ok := p.exactBySection[*section][name]; !ok {
		p.exactBySection[*section][name] = index
	}
}

func (p *PinningPolicy) storePrefix(section *types.DependencySection, prefix string, index int) {
	entry := prefixPattern{prefix: prefix, groupIndex: index}
	if section == nil {
		p.prefixAny = append(p.prefixAny, entry)
		return
	}
	p.prefixBySection[*section] = append(p.prefixBySection[*section], entry)
}

func (p *PinningPolicy) storeWildcard(section *types.DependencySection, index int) {
	if section == nil {
		if p.wildcardAny < 0 {
			p.wildcardAny = index
		}
		return
	}
	if _, ok := p.wildcardBySec[*section]; !ok {
		p.wildcardBySec[*section] = index
	}
}

func parsePattern(pattern string) (*types.DependencySection, string, patternKind) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return nil, "", patternInvalid
	}
	var section *types.DependencySection
	if parts := strings.SplitN(trimmed, ":", 2); len(parts) == 2 {
		parsed, ok := parseSection(parts[0])
		if !ok {
			return nil, "", patternInvalid
		}
		section = &parsed
		trimmed = strings.TrimSpace(parts[1])
	}
	if trimmed == "" {
		return nil, "", patternInvalid
	}
	if trimmed == "*" {
		return section, "", patternWildcard
	}
	if strings.HasSuffix(trimmed, "*") {
		return section, strings.TrimSuffix(trimmed, "*"), patternPrefix
	}
	return section, trimmed, patternExact
}

func parseSection(token string) (types.DependencySection, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "build":
		return types.SectionBuild, true
	case "host":
		return types.SectionHost, true
	case "run":
		return types.SectionRun, true
	case "test":
		return types.SectionTest, true
	default:
		return "", false
	}
}

func minIndex(current int, candidate int) int {
	if candidate < 0 {
		return current
	}
	if current < 0 || candidate < current {
		return candidate
	}
	return current
}
