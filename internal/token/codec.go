// Package token implements the reversible obfuscation used to embed a
// review id in a shareable URL. Possession of a valid token is not an
// authentication claim; the key is a fixed shared secret, so this is
// obfuscation for transport, not a security boundary.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

var ErrDecodeFailure = errors.New("token decode failure")

const (
	saltedPrefix = "Salted__"
	saltLen      = 8
	kdfIter      = 10000

	// URL-safe stand-ins for the base64 characters that break query
	// strings. Encode replaces every "+" but only the FIRST "/" and "="
	// of the ciphertext; decode mirrors that exactly. Ciphertexts with a
	// second "/" or "=" therefore do not round-trip. Known limitation,
	// kept because already-issued share links depend on it.
	plusSentinel  = "xMl3Jk"
	slashSentinel = "Por21Ld"
	equalSentinel = "Ml32"
)

// Codec encodes and decodes share tokens under a fixed passphrase.
type Codec struct {
	pass []byte
}

func New(secretPass string) *Codec {
	return &Codec{pass: []byte(secretPass)}
}

// Encode encrypts the review id and rewrites the base64 ciphertext into a
// URL-embeddable token.
func (c *Codec) Encode(id string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, iv := c.deriveKeyIV(salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	plaintext := []byte(id)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, plaintext)

	payload := make([]byte, 0, len(saltedPrefix)+saltLen+len(ciphertext))
	payload = append(payload, saltedPrefix...)
	payload = append(payload, salt...)
	payload = append(payload, ciphertext...)

	encoded := base64.StdEncoding.EncodeToString(payload)
	encoded = strings.ReplaceAll(encoded, "+", plusSentinel)
	encoded = strings.Replace(encoded, "/", slashSentinel, 1)
	encoded = strings.Replace(encoded, "=", equalSentinel, 1)
	return encoded, nil
}

// Decode reverses Encode and returns the review id. Any token that does not
// decrypt to a well-formed review id fails with ErrDecodeFailure.
func (c *Codec) Decode(tok string) (string, error) {
	restored := strings.ReplaceAll(tok, plusSentinel, "+")
	restored = strings.Replace(restored, slashSentinel, "/", 1)
	restored = strings.Replace(restored, equalSentinel, "=", 1)

	payload, err := base64.StdEncoding.DecodeString(restored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if len(payload) < len(saltedPrefix)+saltLen || string(payload[:len(saltedPrefix)]) != saltedPrefix {
		return "", fmt.Errorf("%w: missing salt header", ErrDecodeFailure)
	}

	salt := payload[len(saltedPrefix) : len(saltedPrefix)+saltLen]
	ciphertext := payload[len(saltedPrefix)+saltLen:]

	key, iv := c.deriveKeyIV(salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plaintext, ciphertext)

	id := string(plaintext)
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("%w: garbled plaintext", ErrDecodeFailure)
	}
	return id, nil
}

func (c *Codec) deriveKeyIV(salt []byte) (key, iv []byte) {
	derived := pbkdf2.Key(c.pass, salt, kdfIter, 48, sha256.New)
	return derived[:32], derived[32:]
}
