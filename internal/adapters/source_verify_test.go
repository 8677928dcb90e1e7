package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"
)

func TestVerifyChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openmmtools-0.23.1.tar.gz")
	content := []byte("archive bytes")
	require.NoError(t, os.WriteFile(path, content, 0644))
	sum := sha256.Sum256(content)

	verifier := NewSourceVerifierAdapter()
	require.NoError(t, verifier.VerifyChecksum(context.Background(), path, hex.EncodeToString(sum[:])))
}

func TestVerifyChecksumUppercaseExpected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.tar.gz")
	content := []byte("archive bytes")
	require.NoError(t, os.WriteFile(path, content, 0644))
	sum := sha256.Sum256(content)

	verifier := NewSourceVerifierAdapter()
	upper := hex.EncodeToString(sum[:])
	require.NoError(t, verifier.VerifyChecksum(context.Background(), path, "  "+upper+"  "))
}

func TestVerifyChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("archive bytes"), 0644))

	verifier := NewSourceVerifierAdapter()
	err := verifier.VerifyChecksum(context.Background(), path, "deadbeef")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestVerifyChecksumEmptyExpected(t *testing.T) {
	verifier := NewSourceVerifierAdapter()
	err := verifier.VerifyChecksum(context.Background(), "whatever", "")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestVerifyChecksumMissingArchive(t *testing.T) {
	verifier := NewSourceVerifierAdapter()
	err := verifier.VerifyChecksum(context.Background(), filepath.Join(t.TempDir(), "missing.tar.gz"), "deadbeef")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestVerifySignatureMissingKey(t *testing.T) {
	verifier := NewSourceVerifierAdapter()
	err := verifier.VerifySignature(context.Background(), "a", "b", filepath.Join(t.TempDir(), "missing.asc"))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestVerifySignatureMalformedKey(t *testing.T) {
	key := filepath.Join(t.TempDir(), "key.asc")
	require.NoError(t, os.WriteFile(key, []byte("not an armored key"), 0644))
	verifier := NewSourceVerifierAdapter()
	err := verifier.VerifySignature(context.Background(), "a", "b", key)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
