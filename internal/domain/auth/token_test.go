package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	claims := Claims{
		Email: "manager@demo.com",
		Role:  RoleManager,
		Exp:   time.Now().Add(time.Hour).Unix(),
	}

	token := EncodeToken(claims)
	assert.True(t, len(token) > len(TokenPrefix))
	assert.Equal(t, TokenPrefix, token[:len(TokenPrefix)])

	got, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestDecodeToken_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no delimiter", "mockabc"},
		{"bad base64", "mock.!!!not-base64!!!"},
		{"bad json", "mock." + base64.StdEncoding.EncodeToString([]byte("{not json"))},
		{"non-object payload", "mock." + base64.StdEncoding.EncodeToString([]byte(`"just a string"`))},
		{"null payload", "mock." + base64.StdEncoding.EncodeToString([]byte(`null`))},
		{"array payload", "mock." + base64.StdEncoding.EncodeToString([]byte(`[1,2]`))},
		{"prefix only", "mock."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeToken(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// The scheme is unsigned on purpose: a payload assembled by hand must decode
// exactly like one issued by the server.
func TestDecodeToken_ForgedTokenIsAccepted(t *testing.T) {
	forged := "mock." + base64.StdEncoding.EncodeToString(
		[]byte(`{"email":"intruder@evil.com","role":"admin","exp":9999999999}`),
	)

	got, err := DecodeToken(forged)
	require.NoError(t, err)
	assert.Equal(t, "intruder@evil.com", got.Email)
	assert.Equal(t, RoleAdmin, got.Role)
}

func TestDecodeToken_UsesSecondSegment(t *testing.T) {
	claims := Claims{Email: "a@b.c", Role: RoleViewer, Exp: 42}
	token := EncodeToken(claims) + ".trailing-garbage"

	got, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestDecodeToken_UnpaddedBase64(t *testing.T) {
	payload := base64.RawStdEncoding.EncodeToString([]byte(`{"email":"x@y.z","role":"viewer","exp":7}`))
	got, err := DecodeToken("mock." + payload)
	require.NoError(t, err)
	assert.Equal(t, "x@y.z", got.Email)
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()

	assert.True(t, Claims{Exp: now.Add(-time.Second).Unix()}.Expired(now))
	assert.False(t, Claims{Exp: now.Add(time.Hour).Unix()}.Expired(now))
}
