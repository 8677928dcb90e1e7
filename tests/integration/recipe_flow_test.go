package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condarecipe/internal/adapters"
	"condarecipe/internal/app"
	"condarecipe/internal/core"
	"condarecipe/internal/types"
)

// TestRecipeLockFlow exercises the full single-recipe workflow:
//
//	render -> load -> validate -> index from recipe tree -> lock -> inspect
//
// This verifies the pipeline a user follows when locking a freshly
// written recipe against a local channel.
func TestRecipeLockFlow(t *testing.T) {
	dir := t.TempDir()

	recipeContent := `{% set version = "2.1.0" %}

package:
  name: sample-tools
  version: "{{ version }}"

source:
  url: https://example.org/sample-tools-2.1.0.tar.gz
  sha256: 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08

build:
  number: 1

requirements:
  build:
    - python
  run:
    - python
    - requests >=2.28

about:
  home: https://example.org/sample-tools
  license: BSD-3-Clause
  summary: Sample tooling
`
	recipeDir := filepath.Join(dir, "sample-tools")
	require.NoError(t, os.MkdirAll(recipeDir, 0755))
	recipePath := filepath.Join(recipeDir, "meta.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(recipeContent), 0644))

	// Step 1: render resolves the version template.
	loader := adapters.NewRecipeFileAdapter()
	rendered, err := loader.Render(recipePath, types.RenderContext{Platform: types.PlatformLinux})
	require.NoError(t, err)
	assert.Contains(t, rendered, `version: "2.1.0"`)

	// Step 2: the loaded recipe passes schema validation.
	recipe, err := loader.Load(recipePath, types.RenderContext{Platform: types.PlatformLinux})
	require.NoError(t, err)
	validator := core.NewRecipeValidator()
	require.NoError(t, validator.ValidateRecipe(t.Context(), recipe))

	// Step 3: index the recipe tree plus a hand-written channel index
	// covering the external dependencies.
	indexPath := filepath.Join(dir, "channel-index.yaml")
	indexContent := `subdir: linux-64
packages:
  python:
    - version: "3.12.4"
      build_string: h194c7f8_0
  requests:
    - version: "2.31.0"
      build_string: py312_0
    - version: "2.27.1"
      build_string: py310_0
`
	require.NoError(t, os.WriteFile(indexPath, []byte(indexContent), 0644))

	// Step 4: lock against the index.
	service := app.NewService()
	outputDir := filepath.Join(dir, "out")
	lockResult, err := service.Lock(t.Context(), app.LockRequest{
		RecipePath: recipePath,
		IndexPath:  indexPath,
		OutputDir:  outputDir,
		Channel:    "https://conda.example.org/main",
		Subdir:     "linux-64",
	})
	require.NoError(t, err)
	assert.Equal(t, "sample-tools", lockResult.PackageName)
	assert.Equal(t, 3, lockResult.EntryCount)

	lock, err := os.ReadFile(filepath.Join(outputDir, "conda.lock"))
	require.NoError(t, err)
	assert.Contains(t, string(lock), "run requests=2.31.0=py312_0")

	// Step 5: inspect reads back what lock wrote.
	inspectResult, err := service.Inspect(app.InspectRequest{OutputDir: outputDir})
	require.NoError(t, err)
	assert.Equal(t, lockResult.LockID, inspectResult.Intent.LockID)
	assert.Equal(t, 3, inspectResult.LockEntryCount)
}

// TestRecipeValidateRejectsConflicts verifies the lock pipeline surfaces
// an unresolvable constraint instead of silently picking a version.
func TestRecipeValidateRejectsConflicts(t *testing.T) {
	dir := t.TempDir()

	recipeContent := `package:
  name: sample-tools
  version: "1.0.0"
source:
  path: .
requirements:
  run:
    - requests >=99
about:
  home: https://example.org
  license: MIT
`
	recipePath := filepath.Join(dir, "meta.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(recipeContent), 0644))

	indexPath := filepath.Join(dir, "channel-index.yaml")
	indexContent := `subdir: linux-64
packages:
  requests:
    - version: "2.31.0"
      build_string: py312_0
`
	require.NoError(t, os.WriteFile(indexPath, []byte(indexContent), 0644))

	service := app.NewService()
	_, err := service.Lock(t.Context(), app.LockRequest{
		RecipePath: recipePath,
		IndexPath:  indexPath,
		OutputDir:  filepath.Join(dir, "out"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict without resolution directive: requests")
}
