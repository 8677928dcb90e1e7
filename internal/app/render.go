package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/adapters"
)

func (s Service) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	recipePath := strings.TrimSpace(req.RecipePath)
	if recipePath == "" {
		return RenderResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe path is required")
	}
	text, err := s.Recipes.Render(recipePath, renderContext(req.Platform, req.PyVersion, req.Vars))
	if err != nil {
		return RenderResult{}, err
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir != "" {
		output := adapters.NewOutputFileAdapter(outputDir)
		if err := output.WriteRenderedRecipe(text); err != nil {
			return RenderResult{}, err
		}
	}
	return RenderResult{Text: text, OutputDir: outputDir}, nil
}
