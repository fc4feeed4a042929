package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgercheck/internal/common"
)

func newTestCipher(t *testing.T) *FernetCipher {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := NewCipher(key)
	require.NoError(t, err)
	return c
}

func TestFernetCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)
	plaintext := []byte(`{"status":"success","financial_summary":{"net_profit":400000}}`)

	token, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotContains(t, token, "net_profit")

	got, err := c.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestFernetCipher_DecryptFailures(t *testing.T) {
	c := newTestCipher(t)
	token, err := c.Encrypt([]byte("secret"))
	require.NoError(t, err)

	other := newTestCipher(t)
	tampered := token[:len(token)-4] + "AAAA"

	for name, input := range map[string]string{
		"empty":         "",
		"plain JSON":    `{"status":"success"}`,
		"tampered":      tampered,
		"truncated":     token[:20],
		"not base64!!!": "!!!!",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decrypt(input)
			require.ErrorIs(t, err, common.ErrDecryptionFailed)
		})
	}

	t.Run("wrong key", func(t *testing.T) {
		_, err := other.Decrypt(token)
		require.ErrorIs(t, err, common.ErrDecryptionFailed)
	})
}

func TestNewCipher(t *testing.T) {
	_, err := NewCipher("   ")
	require.ErrorIs(t, err, common.ErrMissingEncryptionKey)

	_, err = NewCipher("not-a-key")
	require.ErrorIs(t, err, common.ErrInvalidConfig)

	key, err := GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 44)
}
