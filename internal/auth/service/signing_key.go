package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	"golang.org/x/crypto/hkdf"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

const (
	// SigningKeySize is the length in bytes of the derived HS256 key.
	SigningKeySize = 32

	minSecretLength = 16
	signingKeyInfo  = "modelgate token signing key"
)

// DeriveSigningKey turns the configured token secret into an HS256 signing key.
//
// When keyURI is empty the secret is used as HKDF input directly. Otherwise the secret is
// base64 ciphertext that is first decrypted with the KMS keeper at keyURI
// (gcpkms://, awskms://, azurekeyvault://, hashivault:// or base64key://).
func DeriveSigningKey(ctx context.Context, secret, keyURI string) ([]byte, error) {
	material := []byte(secret)

	if keyURI != "" {
		ciphertext, err := base64.StdEncoding.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("failed to decode token secret ciphertext: %w", err)
		}

		keeper, err := secrets.OpenKeeper(ctx, keyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() { _ = keeper.Close() }()

		material, err = keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt token secret: %w", err)
		}
	}

	if len(material) < minSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLength)
	}

	key := make([]byte, SigningKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, material, nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	return key, nil
}
