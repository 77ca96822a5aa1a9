// Package crypto provides the AES-GCM primitives used to keep provider
// credentials encrypted at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidKeySize       = errors.New("invalid AES key size (must be 16, 24, or 32 bytes)")
	ErrInvalidCiphertext    = errors.New("ciphertext too short to contain nonce")
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")
)

// NewAESGCM creates an AES-GCM AEAD for the given key.
func NewAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}

// Encrypt seals plaintext with a fresh random nonce. The nonce is
// prepended to the returned ciphertext for storage.
func Encrypt(aead cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// Decrypt opens ciphertext produced by Encrypt (nonce prepended).
func Decrypt(aead cipher.AEAD, ciphertextWithNonce []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(ciphertextWithNonce) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce := ciphertextWithNonce[:nonceSize]
	ciphertext := ciphertextWithNonce[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}
