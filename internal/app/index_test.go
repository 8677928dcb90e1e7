package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"condarecipe/internal/adapters"
)

func TestIndexFromRecipeRoots(t *testing.T) {
	root := t.TempDir()
	recipeDir := filepath.Join(root, "openmmtools", "conda-recipe")
	require.NoError(t, os.MkdirAll(recipeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(recipeDir, "meta.yaml"), []byte(testRecipeText), 0644))

	output := filepath.Join(t.TempDir(), "channel-index.yaml")
	service := NewService()
	result, err := service.Index(context.Background(), IndexRequest{
		RecipeRoots: []string{root},
		Output:      output,
		Subdir:      "linux-64",
	})
	require.NoError(t, err)
	require.Equal(t, output, result.OutputPath)
	require.Equal(t, 1, result.PackageCount)
	require.Equal(t, 1, result.EntryCount)

	entries, err := adapters.NewChannelIndexFileAdapter(output).AvailableVersions("openmmtools")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "0.23.1", entries[0].Version)
}

func TestIndexRequiresOutput(t *testing.T) {
	service := NewService()
	_, err := service.Index(context.Background(), IndexRequest{RecipeRoots: []string{"."}})
	require.Error(t, err)
}

func TestIndexRequiresSources(t *testing.T) {
	service := NewService()
	_, err := service.Index(context.Background(), IndexRequest{Output: "out.yaml"})
	require.Error(t, err)
}

func TestUploadValidation(t *testing.T) {
	service := NewService()
	_, err := service.Upload(context.Background(), UploadRequest{})
	require.Error(t, err)

	_, err = service.Upload(context.Background(), UploadRequest{
		Endpoint: "http://example.invalid",
		Subdir:   "linux-64",
	})
	require.Error(t, err)
}
