package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRecipeText = `{% set name = "openmmtools" %}
{% set version = "0.23.1" %}

package:
  name: "{{ name }}"
  version: "{{ version }}"

source:
  path: ../..

build:
  preserve_egg_dir: true
  number: 0

requirements:
  build:
    - python
    - setuptools
  run:
    - python
    - numpy >=1.14
    - scipy
    - pywin32       # [win]

test:
  requires:
    - nose

about:
  home: https://github.com/choderalab/openmmtools
  license: MIT
`

func writeTestRecipe(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestValidate(t *testing.T) {
	service := NewService()
	result, err := service.Validate(context.Background(), ValidateRequest{
		RecipePath: writeTestRecipe(t, testRecipeText),
	})
	require.NoError(t, err)
	require.Equal(t, "openmmtools", result.PackageName)
	require.Equal(t, "0.23.1", result.Version)
}

func TestValidateMissingPath(t *testing.T) {
	service := NewService()
	_, err := service.Validate(context.Background(), ValidateRequest{})
	require.Error(t, err)
}

func TestValidateRejectsBadSpecifier(t *testing.T) {
	text := `package:
  name: sample
  version: "1.0"
source:
  path: .
requirements:
  run:
    - numpy >=
about:
  home: https://example.org
  license: MIT
`
	service := NewService()
	_, err := service.Validate(context.Background(), ValidateRequest{
		RecipePath: writeTestRecipe(t, text),
	})
	require.Error(t, err)
}

func TestLint(t *testing.T) {
	text := `package:
  name: sample
  version: "1.0"
source:
  path: .
requirements:
  run:
    - python
`
	service := NewService()
	result, err := service.Lint(context.Background(), LintRequest{
		RecipePath: writeTestRecipe(t, text),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Findings)

	_, err = service.Lint(context.Background(), LintRequest{
		RecipePath: writeTestRecipe(t, text),
		Strict:     true,
	})
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	service := NewService()
	outputDir := t.TempDir()
	result, err := service.Render(context.Background(), RenderRequest{
		RecipePath: writeTestRecipe(t, testRecipeText),
		OutputDir:  outputDir,
	})
	require.NoError(t, err)
	require.Contains(t, result.Text, "name: \"openmmtools\"")
	require.NotContains(t, result.Text, "pywin32")

	rendered, err := os.ReadFile(filepath.Join(outputDir, "meta.rendered.yaml"))
	require.NoError(t, err)
	require.Equal(t, result.Text, string(rendered))
}
