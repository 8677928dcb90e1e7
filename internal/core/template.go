package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

var setPattern = regexp.MustCompile(`^\s*\{%\s*set\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"([^"]*)"\s*%\}\s*$`)
var varPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// ExpandTemplate resolves the minimal template dialect recipes use:
// leading `{% set name = "value" %}` assignments and `{{ name }}`
// references. Assignment lines are consumed; caller-provided vars
// override recipe-level assignments. Referencing an unassigned variable
// is an error.
func ExpandTemplate(text string, vars map[string]string) (string, error) {
	resolved := map[string]string{}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if match := setPattern.FindStringSubmatch(line); match != nil {
			resolved[match[1]] = match[2]
			continue
		}
		kept = append(kept, line)
	}
	for key, value := range vars {
		resolved[key] = value
	}

	var missing string
	out := varPattern.ReplaceAllStringFunc(strings.Join(kept, "\n"), func(ref string) string {
		name := varPattern.FindStringSubmatch(ref)[1]
		value, ok := resolved[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return ref
		}
		return value
	})
	if missing != "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("undefined template variable: %s", missing))
	}
	return out, nil
}
