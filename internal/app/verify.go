package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	recipePath := strings.TrimSpace(req.RecipePath)
	if recipePath == "" {
		return VerifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe path is required")
	}
	archivePath := strings.TrimSpace(req.ArchivePath)
	if archivePath == "" {
		return VerifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source archive path is required")
	}
	recipe, err := s.Recipes.Load(recipePath, renderContext(req.Platform, req.PyVersion, nil))
	if err != nil {
		return VerifyResult{}, err
	}
	if strings.TrimSpace(recipe.Source.SHA256) == "" {
		return VerifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("recipe declares no source sha256")
	}
	if err := s.Verifier.VerifyChecksum(ctx, archivePath, recipe.Source.SHA256); err != nil {
		return VerifyResult{}, err
	}

	signaturePath := strings.TrimSpace(req.SignaturePath)
	publicKeyPath := strings.TrimSpace(req.PublicKeyPath)
	if signaturePath == "" && publicKeyPath == "" {
		return VerifyResult{PackageName: recipe.Package.Name}, nil
	}
	if signaturePath == "" || publicKeyPath == "" {
		return VerifyResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("signature verification requires both signature and public key")
	}
	if err := s.Verifier.VerifySignature(ctx, archivePath, signaturePath, publicKeyPath); err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{
		PackageName:      recipe.Package.Name,
		SignatureChecked: true,
	}, nil
}
