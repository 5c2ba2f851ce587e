package vault

import (
	"strings"
	"testing"

	"claimbridge-service/internal/pkg/constvars"
	"claimbridge-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *vaultService {
	t.Helper()
	key := []byte("0123456789abcdef0123456789abcdef")
	svc, err := NewVaultService(key)
	require.NoError(t, err)
	return svc.(*vaultService)
}

func TestNewVaultService(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		_, err := NewVaultService([]byte("too-short"))
		assert.Error(t, err)
	})

	t.Run("accepts 32 byte key", func(t *testing.T) {
		_, err := NewVaultService([]byte("0123456789abcdef0123456789abcdef"))
		assert.NoError(t, err)
	})
}

func TestVaultEncryptDecrypt(t *testing.T) {
	svc := newTestVault(t)

	t.Run("roundtrip", func(t *testing.T) {
		envelope, err := svc.Encrypt("refresh-token-value")
		require.NoError(t, err)

		plaintext, err := svc.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, "refresh-token-value", plaintext)
	})

	t.Run("envelope has three hex parts", func(t *testing.T) {
		envelope, err := svc.Encrypt("secret")
		require.NoError(t, err)

		parts := strings.Split(envelope, ":")
		require.Len(t, parts, 3)
		assert.Len(t, parts[0], 24) // 12 byte nonce
		assert.Len(t, parts[2], 32) // 16 byte tag
	})

	t.Run("fresh nonce per encryption", func(t *testing.T) {
		first, err := svc.Encrypt("same-plaintext")
		require.NoError(t, err)
		second, err := svc.Encrypt("same-plaintext")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NotEqual(t, strings.Split(first, ":")[0], strings.Split(second, ":")[0])
	})

	t.Run("empty plaintext roundtrips", func(t *testing.T) {
		envelope, err := svc.Encrypt("")
		require.NoError(t, err)

		plaintext, err := svc.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, "", plaintext)
	})
}

func TestVaultDecryptFailures(t *testing.T) {
	svc := newTestVault(t)

	envelope, err := svc.Encrypt("secret")
	require.NoError(t, err)
	parts := strings.Split(envelope, ":")

	flipHexChar := func(s string) string {
		replacement := byte('0')
		if s[0] == '0' {
			replacement = '1'
		}
		return string(replacement) + s[1:]
	}

	assertCustomError := func(t *testing.T, err error, devMessage string) {
		t.Helper()
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Contains(t, customErr.DevMessage, devMessage)
	}

	t.Run("two part envelope is a format error", func(t *testing.T) {
		_, err := svc.Decrypt(parts[0] + ":" + parts[1])
		assertCustomError(t, err, constvars.ErrDevVaultEnvelopeFormat)
	})

	t.Run("non hex nonce is a format error", func(t *testing.T) {
		_, err := svc.Decrypt("zz:" + parts[1] + ":" + parts[2])
		assertCustomError(t, err, constvars.ErrDevVaultEnvelopeFormat)
	})

	t.Run("wrong nonce length is a format error", func(t *testing.T) {
		_, err := svc.Decrypt("aabb:" + parts[1] + ":" + parts[2])
		assertCustomError(t, err, constvars.ErrDevVaultEnvelopeFormat)
	})

	t.Run("tampered ciphertext is an integrity error", func(t *testing.T) {
		_, err := svc.Decrypt(parts[0] + ":" + flipHexChar(parts[1]) + ":" + parts[2])
		assertCustomError(t, err, constvars.ErrDevVaultIntegrityFailed)
	})

	t.Run("tampered tag is an integrity error", func(t *testing.T) {
		_, err := svc.Decrypt(parts[0] + ":" + parts[1] + ":" + flipHexChar(parts[2]))
		assertCustomError(t, err, constvars.ErrDevVaultIntegrityFailed)
	})

	t.Run("wrong key is an integrity error", func(t *testing.T) {
		otherSvc, err := NewVaultService([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)

		_, err = otherSvc.Decrypt(envelope)
		assertCustomError(t, err, constvars.ErrDevVaultIntegrityFailed)
	})
}
