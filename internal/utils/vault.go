package utils

import (
	"crypto/aes"
	"encoding/hex"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
)

// Vault encrypts, decrypts and masks card numbers with a process-wide
// symmetric key. Encryption is deliberately deterministic: the uniqueness
// check on stored ciphertexts (and the UNIQUE constraint backing it) only
// works if identical plaintexts encrypt identically. Every plaintext is a
// unique 16-digit PAN, so the determinism leaks nothing beyond the equality
// the check needs.
type Vault struct {
	key []byte
}

// NewVault creates a vault with the given AES key (16, 24 or 32 bytes).
func NewVault(key []byte) (*Vault, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 16, 24, or 32 bytes, got %d", len(key))
	}
	return &Vault{key: key}, nil
}

// Encrypt encrypts a card number using AES in ECB mode with PKCS#7 padding
// and returns the hex-encoded ciphertext.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("input data is empty")
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	// Add PKCS#7 padding
	data := []byte(plaintext)
	padding := aes.BlockSize - len(data)%aes.BlockSize
	for i := 0; i < padding; i++ {
		data = append(data, byte(padding))
	}

	ciphertext := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Encrypt(ciphertext[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a hex-encoded ciphertext produced by Encrypt. Malformed
// input or a key mismatch yields models.ErrDecryption.
func (v *Vault) Decrypt(encrypted string) (string, error) {
	if len(encrypted) == 0 {
		return "", fmt.Errorf("%w: encrypted data is empty", models.ErrDecryption)
	}

	data, err := hex.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode hex: %v", models.ErrDecryption, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: invalid ciphertext length: %d bytes", models.ErrDecryption, len(data))
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create cipher: %v", models.ErrDecryption, err)
	}

	plaintext := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Decrypt(plaintext[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	// Remove PKCS#7 padding
	padding := int(plaintext[len(plaintext)-1])
	if padding > aes.BlockSize || padding == 0 || padding > len(plaintext) {
		return "", fmt.Errorf("%w: invalid padding value: %d", models.ErrDecryption, padding)
	}
	for i := len(plaintext) - padding; i < len(plaintext); i++ {
		if int(plaintext[i]) != padding {
			return "", fmt.Errorf("%w: invalid padding bytes", models.ErrDecryption)
		}
	}

	return string(plaintext[:len(plaintext)-padding]), nil
}

// Mask returns the display form of a card number, revealing only the last
// four digits. Inputs shorter than four characters mask entirely.
func Mask(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return "**** **** **** " + cardNumber[len(cardNumber)-4:]
}
