package codec

import (
	"encoding/base64"
	"strings"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// EncodeBase64 returns the standard padded Base64 encoding of src.
func EncodeBase64(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// DecodeBase64 decodes standard padded Base64. Surrounding whitespace is
// ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Empty(NameBase64)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: malformed input", NameBase64)
	}
	return b, nil
}

type base64Transform struct{ base }

func (base64Transform) Encode(text string, _ Params) (string, error) {
	return EncodeBase64([]byte(text)), nil
}

func (base64Transform) Decode(text string, _ Params) (string, error) {
	b, err := DecodeBase64(text)
	if err != nil {
		return "", err
	}
	return bytesToText(b), nil
}
