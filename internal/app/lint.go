package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/core"
)

func (s Service) Lint(ctx context.Context, req LintRequest) (LintResult, error) {
	recipePath := strings.TrimSpace(req.RecipePath)
	if recipePath == "" {
		return LintResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe path is required")
	}
	recipe, err := s.Recipes.Load(recipePath, renderContext(req.Platform, req.PyVersion, nil))
	if err != nil {
		return LintResult{}, err
	}
	findings := core.LintRecipe(recipe)
	result := LintResult{
		PackageName: recipe.Package.Name,
		Findings:    findings,
	}
	if req.Strict && len(findings) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("lint found %d issue(s)", len(findings)))
	}
	return result, nil
}
