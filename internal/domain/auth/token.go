package auth

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// TokenPrefix marks the mock token format so clients can distinguish it
// from a real JWT. The payload after the dot is plain base64 JSON with no
// signature; anyone holding this scheme can mint a token. That is a stated
// property of the demo, not an oversight.
const TokenPrefix = "mock."

// ErrInvalidToken is returned by DecodeToken for any input that is not a
// well-formed mock token.
var ErrInvalidToken = errors.New("invalid token")

// EncodeToken serializes the claims to JSON and wraps them in the mock
// token format. It never fails: Claims contains nothing json.Marshal can
// reject.
func EncodeToken(c Claims) string {
	payload, _ := json.Marshal(c)
	return TokenPrefix + base64.StdEncoding.EncodeToString(payload)
}

// DecodeToken parses a mock token back into claims. It returns
// ErrInvalidToken for a missing delimiter, bad base64, bad JSON, or a
// payload that is not an object. Expiry is deliberately not checked here;
// both guards apply that check themselves.
func DecodeToken(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return Claims{}, ErrInvalidToken
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		// Tokens minted elsewhere may omit padding.
		raw, err = base64.RawStdEncoding.DecodeString(parts[1])
		if err != nil {
			return Claims{}, ErrInvalidToken
		}
	}

	// json.Unmarshal leaves the destination untouched for a literal null,
	// so the payload must be an object before it can be claims.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return Claims{}, ErrInvalidToken
	}

	return c, nil
}
