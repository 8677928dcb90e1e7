package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func TestParseMatchSpec(t *testing.T) {
	tests := []struct {
		raw   string
		name  string
		build string
		want  []types.Constraint
	}{
		{"numpy", "numpy", "", nil},
		{"numpy >=1.14", "numpy", "", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpGte, Version: "1.14", Source: "requirements:run"},
		}},
		{"numpy>=1.14", "numpy", "", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpGte, Version: "1.14", Source: "requirements:run"},
		}},
		{"numpy >=1.8,<2", "numpy", "", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpGte, Version: "1.8", Source: "requirements:run"},
			{Name: "numpy", Op: types.ConstraintOpLt, Version: "2", Source: "requirements:run"},
		}},
		{"numpy >= 1.8", "numpy", "", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpGte, Version: "1.8", Source: "requirements:run"},
		}},
		{"numpy >= 1.8, < 2", "numpy", "", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpGte, Version: "1.8", Source: "requirements:run"},
			{Name: "numpy", Op: types.ConstraintOpLt, Version: "2", Source: "requirements:run"},
		}},
		{"python 3.9.*", "python", "", []types.Constraint{
			{Name: "python", Op: types.ConstraintOpEq2, Version: "3.9.*", Source: "requirements:run"},
		}},
		{"numpy 1.26.* py38*", "numpy", "py38*", []types.Constraint{
			{Name: "numpy", Op: types.ConstraintOpEq2, Version: "1.26.*", Source: "requirements:run"},
		}},
		{"openmm !=8.0.0", "openmm", "", []types.Constraint{
			{Name: "openmm", Op: types.ConstraintOpNe, Version: "8.0.0", Source: "requirements:run"},
		}},
		{"PyYAML", "pyyaml", "", nil},
		{"netCDF4 ~=1.6", "netcdf4", "", []types.Constraint{
			{Name: "netcdf4", Op: types.ConstraintOpCompat, Version: "1.6", Source: "requirements:run"},
		}},
	}

	for _, tt := range tests {
		dep, err := ParseMatchSpec(tt.raw, types.SectionRun, "requirements:run")
		require.NoError(t, err, tt.raw)
		if diff := cmp.Diff(tt.name, dep.Name); diff != "" {
			t.Fatalf("unexpected name for %q (-want +got):\n%s", tt.raw, diff)
		}
		if diff := cmp.Diff(tt.build, dep.Build); diff != "" {
			t.Fatalf("unexpected build for %q (-want +got):\n%s", tt.raw, diff)
		}
		if diff := cmp.Diff(tt.want, dep.Constraints); diff != "" {
			t.Fatalf("unexpected constraints for %q (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseMatchSpecRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		">=1.0",
		"numpy >=",
		"numpy >=1.8,,<2",
		"numpy 1.8 py38* extra",
	} {
		_, err := ParseMatchSpec(raw, types.SectionRun, "requirements:run")
		require.Error(t, err, raw)
	}
}

func TestFormatMatchSpec(t *testing.T) {
	dep, err := ParseMatchSpec("numpy >=1.8,<2 py38*", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	if diff := cmp.Diff("numpy >=1.8,<2 py38*", FormatMatchSpec(dep)); diff != "" {
		t.Fatalf("unexpected canonical form (-want +got):\n%s", diff)
	}
	bare, err := ParseMatchSpec("scipy", types.SectionRun, "requirements:run")
	require.NoError(t, err)
	if diff := cmp.Diff("scipy", FormatMatchSpec(bare)); diff != "" {
		t.Fatalf("unexpected canonical form (-want +got):\n%s", diff)
	}
}
