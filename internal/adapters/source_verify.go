package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/ports"
)

// SourceVerifierAdapter checks source archives against the recipe's
// declared sha256 and, when a key is provided, a detached armored
// signature.
type SourceVerifierAdapter struct{}

func NewSourceVerifierAdapter() SourceVerifierAdapter {
	return SourceVerifierAdapter{}
}

func (a SourceVerifierAdapter) VerifyChecksum(ctx context.Context, archivePath string, expectedSHA256 string) error {
	expected := strings.ToLower(strings.TrimSpace(expectedSHA256))
	if expected == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("expected sha256 is empty")
	}
	actual, err := fileSHA256(archivePath)
	if err != nil {
		return err
	}
	if actual != expected {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("sha256 mismatch: expected %s, got %s", expected, actual))
	}
	return nil
}

func (a SourceVerifierAdapter) VerifySignature(ctx context.Context, archivePath string, signaturePath string, publicKeyPath string) error {
	keyFile, err := os.Open(publicKeyPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("public key file not found").
			WithCause(err)
	}
	defer keyFile.Close()
	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read armored public key").
			WithCause(err)
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source archive not found").
			WithCause(err)
	}
	defer archive.Close()
	signature, err := os.Open(signaturePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("signature file not found").
			WithCause(err)
	}
	defer signature.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, archive, signature, nil); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("signature verification failed").
			WithCause(err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source archive not found").
			WithCause(err)
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to hash source archive").
			WithCause(err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

var _ ports.SourceVerifierPort = SourceVerifierAdapter{}
