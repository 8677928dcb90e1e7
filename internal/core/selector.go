package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/types"
)

var selectorPattern = regexp.MustCompile(`#\s*\[([^\]]+)\]\s*$`)

// ApplySelectors filters recipe text line by line. A line carrying a
// trailing "# [expr]" comment is kept only when expr evaluates true for
// the render context; the comment itself is always stripped.
func ApplySelectors(text string, ctx types.RenderContext) (string, error) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		match := selectorPattern.FindStringSubmatch(line)
		if match == nil {
			out = append(out, line)
			continue
		}
		keep, err := EvalSelector(match[1], ctx)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid selector at line %d", i+1)).
				WithCause(err)
		}
		if keep {
			out = append(out, strings.TrimRight(selectorPattern.ReplaceAllString(line, ""), " \t"))
		}
	}
	return strings.Join(out, "\n"), nil
}

// EvalSelector evaluates a selector expression: "or" groups of "and"
// terms, each term optionally negated with "not". Atoms are platform
// tokens (linux, osx, win, unix, noarch), python epoch tokens (py2k, py3k),
// exact python tokens (py38), or python comparisons (py>=38).
func EvalSelector(expr string, ctx types.RenderContext) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty selector")
	}
	for _, orGroup := range splitKeyword(expr, "or") {
		result := true
		for _, term := range splitKeyword(orGroup, "and") {
			value, err := evalTerm(term, ctx)
			if err != nil {
				return false, err
			}
			if !value {
				result = false
				break
			}
		}
		if result {
			return true, nil
		}
	}
	return false, nil
}

func splitKeyword(expr string, keyword string) []string {
	fields := strings.Fields(expr)
	var groups []string
	var current []string
	for _, field := range fields {
		if field == keyword {
			groups = append(groups, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, field)
	}
	groups = append(groups, strings.Join(current, " "))
	return groups
}

func evalTerm(term string, ctx types.RenderContext) (bool, error) {
	term = strings.TrimSpace(term)
	negate := false
	for strings.HasPrefix(term, "not ") {
		negate = !negate
		term = strings.TrimSpace(strings.TrimPrefix(term, "not "))
	}
	value, err := evalAtom(term, ctx)
	if err != nil {
		return false, err
	}
	if negate {
		return !value, nil
	}
	return value, nil
}

var pyComparePattern = regexp.MustCompile(`^py(==|!=|>=|<=|>|<)(\d+)$`)
var pyExactPattern = regexp.MustCompile(`^py(\d{2,3})$`)

func evalAtom(atom string, ctx types.RenderContext) (bool, error) {
	switch atom {
	case types.PlatformLinux, types.PlatformOSX, types.PlatformWin, types.PlatformNoarch:
		return ctx.Platform == atom, nil
	case "unix":
		return ctx.Platform == types.PlatformLinux || ctx.Platform == types.PlatformOSX, nil
	case "py2k":
		return ctx.PyVersion >= 20 && ctx.PyVersion < 30, nil
	case "py3k":
		return ctx.PyVersion >= 30 && ctx.PyVersion < 40, nil
	}
	if match := pyExactPattern.FindStringSubmatch(atom); match != nil {
		version, _ := strconv.Atoi(match[1])
		return ctx.PyVersion == version, nil
	}
	if match := pyComparePattern.FindStringSubmatch(atom); match != nil {
		version, _ := strconv.Atoi(match[2])
		return comparePy(ctx.PyVersion, match[1], version), nil
	}
	return false, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown selector token: %s", atom))
}

func comparePy(actual int, op string, expected int) bool {
	switch op {
	case "==":
		return actual == expected
	case "!=":
		return actual != expected
	case ">=":
		return actual >= expected
	case "<=":
		return actual <= expected
	case ">":
		return actual > expected
	case "<":
		return actual < expected
	default:
		return false
	}
}
