package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"condarecipe/internal/app"
)

type verifyOptions struct {
	Recipe    string
	Archive   string
	Signature string
	PublicKey string
	Platform  string
	PyVersion int
}

func newVerifyCommand() *cobra.Command {
	opts := verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a source archive against the recipe checksum",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "Recipe meta.yaml path")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "Downloaded source archive")
	cmd.Flags().StringVar(&opts.Signature, "signature", "", "Detached armored signature")
	cmd.Flags().StringVar(&opts.PublicKey, "public-key", "", "Armored public key")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Render platform (linux, osx, win, noarch)")
	cmd.Flags().IntVar(&opts.PyVersion, "py", 0, "Python version for selectors (e.g. 39)")

	_ = viper.BindPFlag("recipe", cmd.Flags().Lookup("recipe"))
	_ = viper.BindPFlag("archive", cmd.Flags().Lookup("archive"))
	_ = viper.BindPFlag("signature", cmd.Flags().Lookup("signature"))
	_ = viper.BindPFlag("public_key", cmd.Flags().Lookup("public-key"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("py", cmd.Flags().Lookup("py"))

	return cmd
}

func runVerify(ctx context.Context, cmd *cobra.Command, opts verifyOptions) error {
	service := newAppService()
	result, err := service.Verify(ctx, app.VerifyRequest{
		RecipePath:    resolveString(cmd, opts.Recipe, "recipe", "recipe"),
		ArchivePath:   resolveString(cmd, opts.Archive, "archive", "archive"),
		SignaturePath: resolveString(cmd, opts.Signature, "signature", "signature"),
		PublicKeyPath: resolveString(cmd, opts.PublicKey, "public_key", "public-key"),
		Platform:      resolveString(cmd, opts.Platform, "platform", "platform"),
		PyVersion:     resolveInt(cmd, opts.PyVersion, "py", "py"),
	})
	if err != nil {
		return err
	}
	if result.SignatureChecked {
		fmt.Printf("verified: %s (checksum and signature)\n", result.PackageName)
		return nil
	}
	fmt.Printf("verified: %s (checksum)\n", result.PackageName)
	return nil
}
