package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func TestCheckLockConfigHints(t *testing.T) {
	config := types.LockConfig{
		Channel: "https://conda.example.org/main",
		Subdir:  "linux-64",
	}

	hints := checkLockConfigHints(LockRequest{Channel: "https://conda.example.org/main"}, config)
	require.Len(t, hints, 1)
	require.Contains(t, hints[0], "--channel")

	hints = checkLockConfigHints(LockRequest{Channel: "x", Subdir: "y"}, config)
	require.Len(t, hints, 2)

	hints = checkLockConfigHints(LockRequest{}, config)
	require.Empty(t, hints)

	hints = checkLockConfigHints(LockRequest{Channel: "x"}, types.LockConfig{})
	require.Empty(t, hints)
}
