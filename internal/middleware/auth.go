package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
)

const ActorIDKey contextKey = "actorID"

// Authenticator verifies HS256 bearer tokens on routes the API marks as secured.
// Only the subject claim is trusted; roles are resolved server-side.
type Authenticator struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthenticator(secret string, logger *zap.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), logger: logger}
}

// Middleware is installed as an api.MiddlewareFunc so it sees the
// BearerAuthScopes marker set on secured operations.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(api.BearerAuthScopes) == nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			WriteError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, ErrorMessageMissingToken)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			WriteError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, ErrorMessageInvalidToken)
			return
		}

		subject, err := a.Verify(tokenString)
		if err != nil {
			a.logger.Debug("Rejected bearer token",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err))
			WriteError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, ErrorMessageInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ActorIDKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verify parses tokenString and returns its subject.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}

// GetActorID returns the authenticated user id, or "" for anonymous requests.
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(ActorIDKey).(string); ok {
		return actorID
	}
	return ""
}
