package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/core"
	"condarecipe/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	recipePath := strings.TrimSpace(req.RecipePath)
	if recipePath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe path is required")
	}
	recipe, err := s.Recipes.Load(recipePath, renderContext(req.Platform, req.PyVersion, nil))
	if err != nil {
		return ValidateResult{}, err
	}
	validator := core.NewRecipeValidator()
	if err := validator.ValidateRecipe(ctx, recipe); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		PackageName: recipe.Package.Name,
		Version:     recipe.Package.Version,
	}, nil
}

// renderContext fills the render inputs with the defaults used when no
// platform is requested.
func renderContext(platform string, pyVersion int, vars map[string]string) types.RenderContext {
	normalized := strings.ToLower(strings.TrimSpace(platform))
	if normalized == "" {
		normalized = types.PlatformLinux
	}
	return types.RenderContext{
		Platform:  normalized,
		PyVersion: pyVersion,
		Vars:      vars,
	}
}
