package ports

import "context"

// SourceVerifierPort checks a downloaded source archive against the
// recipe's declared checksum and an optional detached signature.
type SourceVerifierPort interface {
	VerifyChecksum(ctx context.Context, archivePath string, expectedSHA256 string) error
	VerifySignature(ctx context.Context, archivePath string, signaturePath string, publicKeyPath string) error
}
