// Package signature signs text with a salted SHA-256 digest.
//
// A signature has the form "salt:digest" where salt is 16 lowercase hex
// characters (8 random bytes) and digest is hex(sha256(text + salt)). It
// proves integrity only: anyone holding the text can produce a valid
// signature.
package signature

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// SaltBytes is the number of random bytes in a salt.
const SaltBytes = 8

const separator = ":"

// Sign returns a fresh signature for text. Blank text fails with
// EMPTY_INPUT.
func Sign(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.ErrCodeEmptyInput, "text to sign is empty")
	}
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "generate salt")
	}
	return SignWithSalt(text, hex.EncodeToString(salt)), nil
}

// SignWithSalt signs text with the given salt.
func SignWithSalt(text, salt string) string {
	return salt + separator + digest(text, salt)
}

func digest(text, salt string) string {
	sum := sha256.Sum256([]byte(text + salt))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether sig is a valid signature of text.
func Verify(text, sig string) bool {
	if text == "" || sig == "" {
		return false
	}
	parts := strings.Split(sig, separator)
	if len(parts) != 2 {
		return false
	}
	want := digest(text, parts[0])
	return subtle.ConstantTimeCompare([]byte(want), []byte(parts[1])) == 1
}

// Parse splits a signature into salt and digest and checks their shape.
func Parse(sig string) (salt, sum string, err error) {
	parts := strings.Split(strings.TrimSpace(sig), separator)
	if len(parts) != 2 {
		return "", "", errors.New(errors.ErrCodeInvalidFormat, "signature must have the form salt:digest")
	}
	salt, sum = parts[0], parts[1]
	if len(salt) != 2*SaltBytes || !isHex(salt) {
		return "", "", errors.New(errors.ErrCodeInvalidFormat, "salt must be %d hex characters", 2*SaltBytes)
	}
	if len(sum) != 2*sha256.Size || !isHex(sum) {
		return "", "", errors.New(errors.ErrCodeInvalidFormat, "digest must be %d hex characters", 2*sha256.Size)
	}
	return salt, sum, nil
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil && s == strings.ToLower(s)
}

// Describe renders the parts of a signature for display.
func Describe(sig string) (string, error) {
	salt, sum, err := Parse(sig)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("salt %s, sha256 %s", salt, sum), nil
}
