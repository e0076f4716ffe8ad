package utils

import (
	"testing"

	"github.com/rudenman/Bank-REST/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef"

func TestNewVaultKeyLength(t *testing.T) {
	_, err := NewVault([]byte("short"))
	assert.Error(t, err)

	for _, size := range []int{16, 24, 32} {
		_, err := NewVault(make([]byte, size))
		assert.NoError(t, err)
	}
}

func TestVaultRoundTrip(t *testing.T) {
	vault, err := NewVault([]byte(testKey))
	require.NoError(t, err)

	encrypted, err := vault.Encrypt("4000001234567890")
	require.NoError(t, err)
	assert.NotEqual(t, "4000001234567890", encrypted)

	decrypted, err := vault.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "4000001234567890", decrypted)
}

// Determinism is load-bearing: the uniqueness check against stored
// ciphertexts only works if equal plaintexts encrypt equally.
func TestVaultEncryptDeterministic(t *testing.T) {
	vault, err := NewVault([]byte(testKey))
	require.NoError(t, err)

	first, err := vault.Encrypt("4000001234567890")
	require.NoError(t, err)
	second, err := vault.Encrypt("4000001234567890")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := vault.Encrypt("4000001234567891")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestVaultDecryptErrors(t *testing.T) {
	vault, err := NewVault([]byte(testKey))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", "zzzz"},
		{"not a block multiple", "abcdef"},
		{"empty ciphertext", "00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vault.Decrypt(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrDecryption)
		})
	}
}

func TestVaultEncryptEmpty(t *testing.T) {
	vault, err := NewVault([]byte(testKey))
	require.NoError(t, err)

	_, err = vault.Encrypt("")
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234567812345678", "**** **** **** 5678"},
		{"4000001234567890", "**** **** **** 7890"},
		{"1234", "**** **** **** 1234"},
		{"123", "****"},
		{"", "****"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.input), "Mask(%q)", tt.input)
	}
}
