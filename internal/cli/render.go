package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type renderOptions struct {
	Recipe    string
	Platform  string
	PyVersion int
	Vars      map[string]string
	OutputDir string
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Expand templates and selectors, print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "Recipe meta.yaml path")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Render platform (linux, osx, win, noarch)")
	cmd.Flags().IntVar(&opts.PyVersion, "py", 0, "Python version for selectors (e.g. 39)")
	cmd.Flags().StringToStringVar(&opts.Vars, "var", nil, "Template variable overrides (name=value)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Also write meta.rendered.yaml here")
	_ = viper.BindPFlag("recipe", cmd.Flags().Lookup("recipe"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("py", cmd.Flags().Lookup("py"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, opts renderOptions) error {
	service := newAppService()
	result, err := service.Render(ctx, app.RenderRequest{
		RecipePath: resolveString(cmd, opts.Recipe, "recipe", "recipe"),
		Platform:   resolveString(cmd, opts.Platform, "platform", "platform"),
		PyVersion:  resolveInt(cmd, opts.PyVersion, "py", "py"),
		Vars:       opts.Vars,
		OutputDir:  resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Print(result.Text)
	return nil
}
