package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

type identityKey struct{}

// Auth parses the Bearer token, if any, and stores the caller identity in
// the request context. Requests without an Authorization header pass
// through anonymously; handlers decide whether an identity is required.
// A malformed or badly signed token is rejected outright.
func Auth(secret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "authorization header must use the Bearer scheme")
			return
		}

		identity, err := parseToken(secret, raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

func withIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// identityFrom returns the authenticated caller, or Nobody for anonymous
// requests.
func identityFrom(ctx context.Context) domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(domain.Identity)
	return identity
}

// requireIdentity writes a 401 and returns Nobody when the request carried
// no token.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity := identityFrom(r.Context())
	if identity.IsZero() {
		writeError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
		return domain.Nobody, false
	}
	return identity, true
}

func parseToken(secret []byte, raw string) (domain.Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Nobody, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Nobody, jwt.ErrTokenInvalidSubject
	}
	return domain.Identity(sub), nil
}

// MintToken signs an HS256 token for the identity. Used by operational
// tooling and tests; the service itself never issues tokens to clients.
func MintToken(secret []byte, identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": string(identity),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
