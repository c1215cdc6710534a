package stubapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// issueToken mints an HS256 token carrying the player id the way the real
// backend does.
func (s *Server) issueToken(playerID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    playerID,
		"token_type": "access",
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// withAuth guards the API. Clients send the raw token as the Authorization
// header value, without a Bearer prefix.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		if raw == "" {
			fail(w, http.StatusUnauthorized, "missing Authorization token")
			return
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !tok.Valid {
			s.log.Warn().Err(err).Msg("stubapi: rejected token")
			fail(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid := ""
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if v, ok := claims["user_id"].(string); ok {
				uid = v
			}
		}
		if uid == "" {
			fail(w, http.StatusUnauthorized, "token has no user id")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}
