package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-32-bytes-should-be-long-enough"

func TestAdminToken_RoundTrip(t *testing.T) {
	tok, err := GenerateAdminToken(secret, "ops@cohortlab.io", 2*time.Minute)
	require.NoError(t, err)

	got, err := NewHMACVerifier(secret).Verify(context.Background(), tok)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, got.Claims(&claims))
	require.Equal(t, "ops@cohortlab.io", claims["sub"])
	require.Equal(t, "admin", claims["role"])
}

func TestAdminToken_EmptySecret(t *testing.T) {
	_, err := GenerateAdminToken("", "x", time.Minute)
	require.Error(t, err)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewHMACVerifier(secret)
	ctx := context.Background()

	expired, err := GenerateAdminToken(secret, "x", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	require.Error(t, err, "expired")

	other, err := GenerateAdminToken("different-secret-xxxxxxxxxxxxxxxx", "x", time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	require.Error(t, err, "wrong secret")

	_, err = v.Verify(ctx, "not.a.jwt")
	require.Error(t, err, "malformed")

	seg := base64.RawURLEncoding.EncodeToString
	none := seg([]byte(`{"alg":"none","typ":"JWT"}`)) + "." + seg([]byte(`{"sub":"x","role":"admin","exp":9999999999}`)) + "."
	_, err = v.Verify(ctx, none)
	require.Error(t, err, "alg none")

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Minute).Unix()})
	s, err := noRole.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = v.Verify(ctx, s)
	require.ErrorIs(t, err, ErrNotAdmin)
}

func TestVerify_TamperedPayload(t *testing.T) {
	tok, err := GenerateAdminToken(secret, "user-t", 5*time.Minute)
	require.NoError(t, err)
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payload), "user-t", "attacker", 1)))

	_, err = NewHMACVerifier(secret).Verify(context.Background(), strings.Join(parts, "."))
	require.Error(t, err)
}
