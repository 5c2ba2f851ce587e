package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"claimbridge-service/internal/app/contracts"
	"claimbridge-service/internal/pkg/exceptions"
)

const envelopeParts = 3

type vaultService struct {
	aead cipher.AEAD
}

// NewVaultService builds an AES-256-GCM vault from a 32-byte key. The key
// is deployment configuration, loaded once at startup.
func NewVaultService(key []byte) (contracts.VaultService, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault key must be 32 bytes: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &vaultService{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns the
// envelope hex(nonce):hex(ciphertext):hex(tag).
func (s *vaultService) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", exceptions.ErrVaultEncrypt(err)
	}

	sealed := s.aead.Seal(nil, nonce, []byte(plaintext), nil)
	tagOffset := len(sealed) - s.aead.Overhead()
	ciphertext, tag := sealed[:tagOffset], sealed[tagOffset:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(nonce),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	), nil
}

func (s *vaultService) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != envelopeParts {
		return "", exceptions.ErrVaultFormat(fmt.Errorf("expected %d envelope parts, got %d", envelopeParts, len(parts)))
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", exceptions.ErrVaultFormat(err)
	}
	if len(nonce) != s.aead.NonceSize() {
		return "", exceptions.ErrVaultFormat(fmt.Errorf("nonce length %d, want %d", len(nonce), s.aead.NonceSize()))
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", exceptions.ErrVaultFormat(err)
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", exceptions.ErrVaultFormat(err)
	}

	plaintext, err := s.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", exceptions.ErrVaultIntegrity(err)
	}
	return string(plaintext), nil
}
