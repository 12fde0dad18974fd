// Copyright (c) 2025 @AmarnathCJD

package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyIter    = 4096
	aesKeyLen  = 32
	headerSize = saltLen + aes.BlockSize
)

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, keyIter, aesKeyLen, sha256.New)
}

// encodeBytes encrypts b with AES-CTR under a key derived from the
// passphrase. The random salt and IV are prepended to the ciphertext.
func encodeBytes(b []byte, passphrase string) ([]byte, error) {
	header := make([]byte, headerSize)
	if _, err := rand.Read(header); err != nil {
		return nil, err
	}
	salt, iv := header[:saltLen], header[saltLen:]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize+len(b))
	copy(out, header)
	cipher.NewCTR(block, iv).XORKeyStream(out[headerSize:], b)
	return out, nil
}

func decodeBytes(b []byte, passphrase string) ([]byte, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("session file too short (%d bytes)", len(b))
	}
	salt, iv := b[:saltLen], b[saltLen:headerSize]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(b)-headerSize)
	cipher.NewCTR(block, iv).XORKeyStream(out, b[headerSize:])
	return out, nil
}
