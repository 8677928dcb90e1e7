package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "openmmtools-0.23.1.tar.gz")
	content := []byte("source archive")
	require.NoError(t, os.WriteFile(archive, content, 0644))
	sum := sha256.Sum256(content)

	text := fmt.Sprintf(`package:
  name: openmmtools
  version: "0.23.1"
source:
  url: https://example.org/openmmtools-0.23.1.tar.gz
  sha256: %s
about:
  home: https://example.org
  license: MIT
`, hex.EncodeToString(sum[:]))

	service := NewService()
	result, err := service.Verify(context.Background(), VerifyRequest{
		RecipePath:  writeTestRecipe(t, text),
		ArchivePath: archive,
	})
	require.NoError(t, err)
	require.Equal(t, "openmmtools", result.PackageName)
	require.False(t, result.SignatureChecked)
}

func TestVerifyChecksumMismatch(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "src.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("source archive"), 0644))

	text := `package:
  name: sample
  version: "1.0"
source:
  url: https://example.org/src.tar.gz
  sha256: ` + "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" + `
about:
  home: https://example.org
  license: MIT
`
	service := NewService()
	_, err := service.Verify(context.Background(), VerifyRequest{
		RecipePath:  writeTestRecipe(t, text),
		ArchivePath: archive,
	})
	require.Error(t, err)
}

func TestVerifyRequiresDeclaredChecksum(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "src.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0644))

	service := NewService()
	_, err := service.Verify(context.Background(), VerifyRequest{
		RecipePath:  writeTestRecipe(t, testRecipeText),
		ArchivePath: archive,
	})
	require.Error(t, err)
}

func TestVerifySignatureNeedsBothInputs(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "src.tar.gz")
	content := []byte("source archive")
	require.NoError(t, os.WriteFile(archive, content, 0644))
	sum := sha256.Sum256(content)

	text := fmt.Sprintf(`package:
  name: sample
  version: "1.0"
source:
  url: https://example.org/src.tar.gz
  sha256: %s
about:
  home: https://example.org
  license: MIT
`, hex.EncodeToString(sum[:]))

	service := NewService()
	_, err := service.Verify(context.Background(), VerifyRequest{
		RecipePath:    writeTestRecipe(t, text),
		ArchivePath:   archive,
		SignaturePath: "sig.asc",
	})
	require.Error(t, err)
}
