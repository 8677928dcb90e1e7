package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condarecipe/internal/core"
	"condarecipe/internal/ports"
	"condarecipe/internal/types"
)

type RecipeFileAdapter struct{}

func NewRecipeFileAdapter() RecipeFileAdapter {
	return RecipeFileAdapter{}
}

func (a RecipeFileAdapter) Load(path string, ctx types.RenderContext) (types.Recipe, error) {
	text, err := a.Render(path, ctx)
	if err != nil {
		return types.Recipe{}, err
	}
	var recipe types.Recipe
	if err := yaml.Unmarshal([]byte(text), &recipe); err != nil {
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse recipe yaml").
			WithCause(err)
	}
	return recipe, nil
}

// Render preprocesses the recipe text: template expansion first, then
// selector filtering, so selectors see substituted values.
func (a RecipeFileAdapter) Render(path string, ctx types.RenderContext) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("recipe file not found").
			WithCause(err)
	}
	expanded, err := core.ExpandTemplate(string(data), ctx.Vars)
	if err != nil {
		return "", err
	}
	filtered, err := core.ApplySelectors(expanded, ctx)
	if err != nil {
		return "", err
	}
	return filtered, nil
}

var _ ports.RecipeLoaderPort = RecipeFileAdapter{}

type LockConfigFileAdapter struct{}

func NewLockConfigFileAdapter() LockConfigFileAdapter {
	return LockConfigFileAdapter{}
}

func (a LockConfigFileAdapter) Load(path string) (types.LockConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LockConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lock config file not found").
			WithCause(err)
	}
	var config types.LockConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return types.LockConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse lock config yaml").
			WithCause(err)
	}
	return config, nil
}

var _ ports.LockConfigPort = LockConfigFileAdapter{}
