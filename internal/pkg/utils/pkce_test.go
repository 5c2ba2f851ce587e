package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePKCE(t *testing.T) {
	t.Run("challenge is the S256 hash of the verifier", func(t *testing.T) {
		pair, err := GeneratePKCE()
		require.NoError(t, err)

		sum := sha256.Sum256([]byte(pair.Verifier))
		expected := base64.RawURLEncoding.EncodeToString(sum[:])
		assert.Equal(t, expected, pair.Challenge)
	})

	t.Run("verifier encodes 32 random bytes", func(t *testing.T) {
		pair, err := GeneratePKCE()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(pair.Verifier)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("verifiers are unique", func(t *testing.T) {
		first, err := GeneratePKCE()
		require.NoError(t, err)
		second, err := GeneratePKCE()
		require.NoError(t, err)

		assert.NotEqual(t, first.Verifier, second.Verifier)
	})
}
