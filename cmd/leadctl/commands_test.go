package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/tokens"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenAndVerify(t *testing.T) {
	out, err := run(t, "token", "--secret", "s3cret", "--subject", "ops", "--ttl", "5m")
	require.NoError(t, err)
	tok := strings.TrimSpace(out)
	require.NotEmpty(t, tok)

	_, err = tokens.NewHMACVerifier("s3cret").Verify(context.Background(), tok)
	require.NoError(t, err)

	out, err = run(t, "verify", "--secret", "s3cret", tok)
	require.NoError(t, err)
	require.Contains(t, out, `"sub": "ops"`)
	require.Contains(t, out, `"role": "admin"`)

	_, err = run(t, "verify", "--secret", "other", tok)
	require.Error(t, err)
}

func TestTokenFromEnvironment(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "from-env")
	out, err := run(t, "token")
	require.NoError(t, err)
	_, err = tokens.NewHMACVerifier("from-env").Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	_, err := run(t, "token")
	require.ErrorContains(t, err, "no admin secret")
}

func TestMongoCommandsNeedURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	_, err := run(t, "indexes")
	require.ErrorIs(t, err, errNoMongo)
	_, err = run(t, "stats")
	require.ErrorIs(t, err, errNoMongo)
}
