package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseMatchSpec parses a conda dependency specifier into a Dependency.
// Accepted forms:
//
//	name
//	name<op>version            (operator glued, e.g. "numpy>=1.8")
//	name version-spec          (e.g. "numpy >=1.8,<2", "python 3.9.*")
//	name version-spec build    (e.g. "numpy 1.26.* py38*")
//
// A version-spec is a comma-separated AND list of clauses. Whitespace
// around operators and after clause commas is tolerated ("numpy >= 1.8").
// A bare version clause means exact; a trailing ".*" clause is kept as a
// PEP 440 prefix match.
func ParseMatchSpec(raw string, section types.DependencySection, source string) (types.Dependency, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Dependency{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty match spec")
	}
	fields := mergeSpecFields(strings.Fields(trimmed))
	if len(fields) > 3 {
		return types.Dependency{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid match spec: %s", raw))
	}

	name, glued, err := splitGluedSpec(fields[0], raw)
	if err != nil {
		return types.Dependency{}, err
	}
	if glued != "" && len(fields) > 1 {
		return types.Dependency{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid match spec: %s", raw))
	}

	dep := types.Dependency{
		Name:    shared.NormalizePackageName(name),
		Section: section,
	}
	if dep.Name == "" {
		return types.Dependency{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("match spec missing name: %s", raw))
	}

	versionSpec := glued
	if len(fields) >= 2 {
		versionSpec = fields[1]
	}
	if len(fields) == 3 {
		dep.Build = fields[2]
	}
	if versionSpec == "" {
		return dep, nil
	}

	for _, clause := range strings.Split(versionSpec, ",") {
		constraint, err := parseClause(clause, dep.Name, source)
		if err != nil {
			return types.Dependency{}, err
		}
		dep.Constraints = append(dep.Constraints, constraint)
	}
	return dep, nil
}

// mergeSpecFields rejoins version-spec tokens split by whitespace, so
// "numpy >= 1.8" and "numpy >=1.8, <2" parse the same as their
// tightly-written forms. A field ending in an operator or comma takes
// the following field as its continuation.
func mergeSpecFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		for i+1 < len(fields) && specFieldContinues(field) {
			i++
			field += fields[i]
		}
		out = append(out, field)
	}
	return out
}

func specFieldContinues(field string) bool {
	if field == "" {
		return false
	}
	return strings.ContainsAny(field[len(field)-1:], "><=!~,")
}

// splitGluedSpec separates "numpy>=1.8" into name and version-spec.
// Returns the whole token as name when no operator is present.
func splitGluedSpec(token string, raw string) (string, string, error) {
	idx := strings.IndexAny(token, "><=!~")
	if idx < 0 {
		return token, "", nil
	}
	if idx == 0 {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("match spec missing name: %s", raw))
	}
	return token[:idx], token[idx:], nil
}

func parseClause(clause string, name string, source string) (types.Constraint, error) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("empty version clause for %s", name))
	}
	for _, op := range opTokens {
		if strings.HasPrefix(clause, string(op)) {
			version := strings.TrimSpace(strings.TrimPrefix(clause, string(op)))
			if version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid version clause for %s: %s", name, clause))
			}
			return types.Constraint{
				Name:    name,
				Op:      op,
				Version: version,
				Source:  source,
			}, nil
		}
	}
	// Bare version. A trailing ".*" stays a prefix match; anything else
	// pins the exact version.
	return types.Constraint{
		Name:    name,
		Op:      types.ConstraintOpEq2,
		Version: clause,
		Source:  source,
	}, nil
}

// FormatMatchSpec renders a dependency back into canonical match spec
// form: "name clause,clause build".
func FormatMatchSpec(dep types.Dependency) string {
	if len(dep.Constraints) == 0 && dep.Build == "" {
		return dep.Name
	}
	var clauses []string
	for _, constraint := range dep.Constraints {
		clauses = append(clauses, string(constraint.Op)+constraint.Version)
	}
	out := dep.Name
	if len(clauses) > 0 {
		out += " " + strings.Join(clauses, ",")
	}
	if dep.Build != "" {
		out += " " + dep.Build
	}
	return out
}

// ParseSection parses every specifier of one requirements section.
func ParseSection(entries []string, section types.DependencySection) ([]types.Dependency, error) {
	var deps []types.Dependency
	for _, entry := range entries {
		dep, err := ParseMatchSpec(entry, section, fmt.Sprintf("requirements:%s", section))
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
