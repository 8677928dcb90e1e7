package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type lintOptions struct {
	Recipe    string
	Platform  string
	PyVersion int
	Strict    bool
}

func newLintCommand() *cobra.Command {
	opts := lintOptions{}
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report recipe quality findings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "Recipe meta.yaml path")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Render platform (linux, osx, win, noarch)")
	cmd.Flags().IntVar(&opts.PyVersion, "py", 0, "Python version for selectors (e.g. 39)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when findings exist")
	_ = viper.BindPFlag("recipe", cmd.Flags().Lookup("recipe"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("py", cmd.Flags().Lookup("py"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runLint(ctx context.Context, cmd *cobra.Command, opts lintOptions) error {
	service := newAppService()
	result, err := service.Lint(ctx, app.LintRequest{
		RecipePath: resolveString(cmd, opts.Recipe, "recipe", "recipe"),
		Platform:   resolveString(cmd, opts.Platform, "platform", "platform"),
		PyVersion:  resolveInt(cmd, opts.PyVersion, "py", "py"),
		Strict:     resolveBool(cmd, opts.Strict, "strict", "strict"),
	})
	for _, finding := range result.Findings {
		fmt.Printf("- %s\n", finding)
	}
	if err != nil {
		return err
	}
	fmt.Printf("lint: %s, %d finding(s)\n", result.PackageName, len(result.Findings))
	return nil
}
