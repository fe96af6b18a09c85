package storage

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// EncryptionMagicHeader is prepended to encrypted backups for identification.
	EncryptionMagicHeader = "MDCENC01"

	// Argon2id parameters (RFC 9106 recommendations).
	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024 // 64 MB
	defaultArgon2Threads = 4
	defaultArgon2KeyLen  = 32 // AES-256

	saltLength = 32
)

// EncryptionConfig holds the password and key-derivation cost.
type EncryptionConfig struct {
	Password string

	// Argon2Time is the number of iterations. Default: 1
	Argon2Time uint32

	// Argon2Memory is the memory cost in KB. Default: 64 MB
	Argon2Memory uint32

	// Argon2Threads is the parallelism. Default: 4
	Argon2Threads uint8
}

// DefaultEncryptionConfig returns encryption config with secure defaults.
func DefaultEncryptionConfig(password string) *EncryptionConfig {
	return &EncryptionConfig{
		Password:      password,
		Argon2Time:    defaultArgon2Time,
		Argon2Memory:  defaultArgon2Memory,
		Argon2Threads: defaultArgon2Threads,
	}
}

func deriveKey(salt []byte, config *EncryptionConfig) []byte {
	return argon2.IDKey(
		[]byte(config.Password),
		salt,
		config.Argon2Time,
		config.Argon2Memory,
		config.Argon2Threads,
		defaultArgon2KeyLen,
	)
}

func newGCM(salt []byte, config *EncryptionConfig) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(salt, config))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt seals plaintext with AES-256-GCM under an Argon2id key.
// Output layout: magic header, salt, nonce, ciphertext with auth tag.
func Encrypt(plaintext []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newGCM(salt, config)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(EncryptionMagicHeader)+saltLength+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, EncryptionMagicHeader...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt.
func Decrypt(data []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}
	if !IsEncrypted(data) {
		return nil, fmt.Errorf("data is not encrypted or has wrong format")
	}
	data = data[len(EncryptionMagicHeader):]

	// GCM nonce is 12 bytes, auth tag 16.
	if len(data) < saltLength+12+16 {
		return nil, fmt.Errorf("encrypted data too short")
	}
	salt := data[:saltLength]
	data = data[saltLength:]

	gcm, err := newGCM(salt, config)
	if err != nil {
		return nil, err
	}

	nonce := data[:gcm.NonceSize()]
	plaintext, err := gcm.Open(nil, nonce, data[gcm.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted data): %w", err)
	}
	return plaintext, nil
}

// IsEncrypted reports whether data starts with the magic header.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(EncryptionMagicHeader))
}
