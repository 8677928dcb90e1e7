package app

import (
	"fmt"
	"os"
	"strings"

	"condarecipe/internal/types"
)

// configHint pairs a flag name with a lock config key for hint messages.
type configHint struct {
	FlagName  string
	ConfigKey string
}

// checkLockConfigHints returns hints for lock flags that duplicate a
// value already present in the lock config. A hint is generated only
// when the user explicitly provided the flag.
func checkLockConfigHints(req LockRequest, config types.LockConfig) []string {
	checks := []struct {
		hint      configHint
		provided  bool
		hasConfig bool
	}{
		{
			hint:      configHint{"--channel", "channel"},
			provided:  strings.TrimSpace(req.Channel) != "",
			hasConfig: config.Channel != "",
		},
		{
			hint:      configHint{"--subdir", "subdir"},
			provided:  strings.TrimSpace(req.Subdir) != "",
			hasConfig: config.Subdir != "",
		},
	}

	var hints []string
	for _, c := range checks {
		if c.provided && c.hasConfig {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is also set in lock config (%s); you can omit the flag",
				c.hint.FlagName, c.hint.ConfigKey,
			))
		}
	}
	return hints
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
