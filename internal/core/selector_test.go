package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"condarecipe/internal/types"
)

func TestEvalSelector(t *testing.T) {
	linuxPy39 := types.RenderContext{Platform: types.PlatformLinux, PyVersion: 39}
	winPy27 := types.RenderContext{Platform: types.PlatformWin, PyVersion: 27}
	noarchPy312 := types.RenderContext{Platform: types.PlatformNoarch, PyVersion: 312}

	tests := []struct {
		expr string
		ctx  types.RenderContext
		want bool
	}{
		{"linux", linuxPy39, true},
		{"win", linuxPy39, false},
		{"unix", linuxPy39, true},
		{"unix", winPy27, false},
		{"not win", linuxPy39, true},
		{"py3k", linuxPy39, true},
		{"py2k", winPy27, true},
		{"py39", linuxPy39, true},
		{"py38", linuxPy39, false},
		{"py>=38", linuxPy39, true},
		{"py<38", linuxPy39, false},
		{"linux and py>=38", linuxPy39, true},
		{"win or osx", linuxPy39, false},
		{"win or py3k", linuxPy39, true},
		{"not win and py>=38", linuxPy39, true},
		{"noarch", noarchPy312, true},
		{"noarch", linuxPy39, false},
		{"not noarch", linuxPy39, true},
		{"noarch or linux", linuxPy39, true},
	}

	for _, tt := range tests {
		got, err := EvalSelector(tt.expr, tt.ctx)
		require.NoError(t, err, tt.expr)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("unexpected result for %q (-want +got):\n%s", tt.expr, diff)
		}
	}
}

func TestEvalSelectorRejectsUnknownToken(t *testing.T) {
	_, err := EvalSelector("sparc", types.RenderContext{Platform: types.PlatformLinux})
	require.Error(t, err)
}

func TestApplySelectors(t *testing.T) {
	text := "requirements:\n" +
		"  run:\n" +
		"    - numpy\n" +
		"    - pywin32        # [win]\n" +
		"    - libgcc         # [linux]\n"
	ctx := types.RenderContext{Platform: types.PlatformLinux, PyVersion: 39}
	out, err := ApplySelectors(text, ctx)
	require.NoError(t, err)
	want := "requirements:\n" +
		"  run:\n" +
		"    - numpy\n" +
		"    - libgcc\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected filtered text (-want +got):\n%s", diff)
	}
}
