package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func TestBestCompatibleEntry(t *testing.T) {
	available := []types.IndexEntry{
		{Version: "1.14.0", BuildString: "py38_0", BuildNumber: 0},
		{Version: "1.26.4", BuildString: "py39_0", BuildNumber: 0},
		{Version: "1.26.4", BuildString: "py39_1", BuildNumber: 1},
		{Version: "2.0.1", BuildString: "py312_0", BuildNumber: 0},
	}

	dep, err := ParseMatchSpec("numpy >=1.14,<2", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	entry, err := bestCompatibleEntry(dep, available)
	require.NoError(t, err)
	if diff := cmp.Diff("1.26.4", entry.Version); diff != "" {
		t.Fatalf("unexpected version (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("py39_1", entry.BuildString); diff != "" {
		t.Fatalf("unexpected build (-want +got):\n%s", diff)
	}
}

func TestBestCompatibleEntryUnconstrained(t *testing.T) {
	available := []types.IndexEntry{
		{Version: "0.9.0"},
		{Version: "1.1.0"},
	}
	dep, err := ParseMatchSpec("scipy", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	entry, err := bestCompatibleEntry(dep, available)
	require.NoError(t, err)
	require.Equal(t, "1.1.0", entry.Version)
}

func TestBestCompatibleEntryBuildStringFilter(t *testing.T) {
	available := []types.IndexEntry{
		{Version: "1.26.4", BuildString: "py38_0"},
		{Version: "1.26.4", BuildString: "py312_0"},
	}
	dep, err := ParseMatchSpec("numpy 1.26.* py38*", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	entry, err := bestCompatibleEntry(dep, available)
	require.NoError(t, err)
	require.Equal(t, "py38_0", entry.BuildString)
}

func TestBestCompatibleEntryConflict(t *testing.T) {
	available := []types.IndexEntry{{Version: "2.0.1"}}
	dep, err := ParseMatchSpec("numpy <2", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	_, err = bestCompatibleEntry(dep, available)
	require.Error(t, err)
}

func TestBestCompatibleEntryNoVersions(t *testing.T) {
	dep, err := ParseMatchSpec("numpy", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	_, err = bestCompatibleEntry(dep, nil)
	require.Error(t, err)
}
