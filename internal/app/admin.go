package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/oidc"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/tokens"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/middleware"
)

// firstOf accepts a token when any of its verifiers does.
type firstOf []middleware.Verifier

func (f firstOf) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	var errs []error
	for _, v := range f {
		tok, err := v.Verify(ctx, raw)
		if err == nil {
			return tok, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// ErrKeycloakClientID is returned when a Keycloak realm is configured
// without the client id its tokens are checked against.
var ErrKeycloakClientID = errors.New("KEYCLOAK_CLIENT_ID is required when KEYCLOAK_URL and KEYCLOAK_REALM are set")

// AdminVerifier builds the verifier for admin routes from the HMAC secret and
// the Keycloak realm. It returns a nil verifier only when neither is
// configured; a configured realm that cannot be built is an error.
func AdminVerifier(ctx context.Context, cfg config.AdminConfig) (middleware.Verifier, error) {
	var vs firstOf
	if cfg.JWTSecret != "" {
		vs = append(vs, tokens.NewHMACVerifier(cfg.JWTSecret))
	}
	kc := cfg.Keycloak
	if kc.URL != "" && kc.Realm != "" {
		if kc.ClientID == "" {
			return nil, ErrKeycloakClientID
		}
		ver, err := oidc.NewVerifier(ctx, oidc.IssuerURL(kc.URL, kc.Realm), kc.ClientID)
		if err != nil {
			return nil, fmt.Errorf("keycloak realm %s: %w", kc.Realm, err)
		}
		vs = append(vs, ver)
	}
	switch len(vs) {
	case 0:
		return nil, nil
	case 1:
		return vs[0], nil
	}
	return vs, nil
}
