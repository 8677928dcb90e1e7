package ports

import "condarecipe/internal/types"

// RecipeLoaderPort loads a meta.yaml recipe, running selector and
// template preprocessing with the given render context.
type RecipeLoaderPort interface {
	Load(path string, ctx types.RenderContext) (types.Recipe, error)
	// Render returns the preprocessed recipe text without decoding it.
	Render(path string, ctx types.RenderContext) (string, error)
}

// LockConfigPort loads the optional lock config side file.
type LockConfigPort interface {
	Load(path string) (types.LockConfig, error)
}
