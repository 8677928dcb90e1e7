package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	text := `{% set name = "openmmtools" %}
{% set version = "0.23.1" %}
package:
  name: "{{ name }}"
  version: "{{ version }}"
`
	out, err := ExpandTemplate(text, nil)
	require.NoError(t, err)
	want := `package:
  name: "openmmtools"
  version: "0.23.1"
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected expansion (-want +got):\n%s", diff)
	}
}

func TestExpandTemplateCallerOverride(t *testing.T) {
	text := `{% set version = "0.23.1" %}
version: {{ version }}`
	out, err := ExpandTemplate(text, map[string]string{"version": "0.24.0"})
	require.NoError(t, err)
	if diff := cmp.Diff("version: 0.24.0", out); diff != "" {
		t.Fatalf("unexpected expansion (-want +got):\n%s", diff)
	}
}

func TestExpandTemplateUndefinedVariable(t *testing.T) {
	_, err := ExpandTemplate("name: {{ name }}", nil)
	require.Error(t, err)
}
