// Package crypt encrypts serialized payloads at rest with Fernet tokens.
package crypt

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/Veraticus/ledgercheck/internal/common"
	"github.com/Veraticus/ledgercheck/internal/service"
)

// FernetCipher implements service.Cipher. The key is loaded once at startup
// and never regenerated.
type FernetCipher struct {
	key *fernet.Key
}

var _ service.Cipher = (*FernetCipher)(nil)

// NewCipher decodes a URL-safe base64 Fernet key.
func NewCipher(encodedKey string) (*FernetCipher, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		return nil, common.ErrMissingEncryptionKey
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key: %w", common.ErrInvalidConfig, err)
	}

	return &FernetCipher{key: key}, nil
}

// GenerateKey returns a fresh encoded key suitable for NewCipher.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// Encrypt seals plaintext into a token.
func (c *FernetCipher) Encrypt(plaintext []byte) (string, error) {
	token, err := fernet.EncryptAndSign(plaintext, c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return string(token), nil
}

// Decrypt opens a token. Tokens do not expire.
func (c *FernetCipher) Decrypt(token string) ([]byte, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), -1, []*fernet.Key{c.key})
	if plaintext == nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}
