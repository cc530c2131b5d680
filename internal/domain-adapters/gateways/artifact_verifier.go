package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/otaupload/internal/domain/interfaces"
	"github.com/ochairo/otaupload/internal/external-adapters/gpg"
)

// VerifyOptions selects the checks run against a firmware image
type VerifyOptions struct {
	ChecksumFile  string
	SignatureFile string
	KeyFile       string
}

// Empty reports whether no verification option was given
func (o VerifyOptions) Empty() bool {
	return o.ChecksumFile == "" && o.SignatureFile == "" && o.KeyFile == ""
}

// ArtifactVerifier runs pre-upload integrity checks on a firmware image
type ArtifactVerifier struct {
	checksums *checksumVerifier
	logger    interfaces.Logger
}

// NewArtifactVerifier creates a new artifact verifier
func NewArtifactVerifier(logger interfaces.Logger) *ArtifactVerifier {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ArtifactVerifier{
		checksums: NewChecksumVerifier(),
		logger:    logger,
	}
}

// Verify runs every requested check and stops at the first failure
func (v *ArtifactVerifier) Verify(ctx context.Context, filePath string, opts VerifyOptions) error {
	if opts.Empty() {
		return fmt.Errorf("no verification checks requested (specify a checksum or signature file)")
	}
	if opts.KeyFile != "" && opts.SignatureFile == "" {
		return fmt.Errorf("public key %s given without a signature file to verify", opts.KeyFile)
	}

	if opts.ChecksumFile != "" {
		if err := v.checksums.VerifyChecksumFile(ctx, filePath, opts.ChecksumFile); err != nil {
			v.logger.Error("Checksum verification failed", interfaces.F("file", filePath), interfaces.F("error", err))
			return fmt.Errorf("checksum verification failed: %w", err)
		}
		v.logger.Info("Checksum verified", interfaces.F("file", filePath))
	}

	if opts.SignatureFile != "" {
		if err := v.verifySignature(filePath, opts); err != nil {
			v.logger.Error("Signature verification failed", interfaces.F("file", filePath), interfaces.F("error", err))
			return err
		}
		v.logger.Info("Signature verified", interfaces.F("file", filePath), interfaces.F("key", opts.KeyFile))
	}

	return nil
}

func (v *ArtifactVerifier) verifySignature(filePath string, opts VerifyOptions) error {
	if opts.KeyFile == "" {
		return fmt.Errorf("a public key file is required to verify %s", opts.SignatureFile)
	}

	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(opts.KeyFile); err != nil {
		return fmt.Errorf("failed to import public key: %w", err)
	}

	if err := verifier.VerifySignatureFromFile(filePath, opts.SignatureFile); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}
