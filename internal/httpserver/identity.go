// internal/httpserver/identity.go
//
// Anonymous player identity.
// A player is a uuid carried in an HS256 JWT, read from the Authorization header
// or the player cookie. Requests without a valid token get a fresh id and cookie.
// Games and records are scoped to that id.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ctxPlayerKey is the context key type for the player id.
type ctxPlayerKey struct{}

var errNoSubject = errors.New("player token has no subject")

// withPlayer resolves the player for the request, issuing a new identity when needed.
// It never rejects a request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if tok := s.bearerOrCookie(r); tok != "" {
			var err error
			if id, err = s.parsePlayerToken(tok); err != nil {
				log.Debug().Err(err).Msg("discarding player token")
			}
		}
		if id == "" {
			id = uuid.NewString()
			tok, exp, err := s.signPlayerToken(id)
			if err != nil {
				log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "token_failed")
				return
			}
			s.setPlayerCookie(w, tok, exp)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id)))
	})
}

// playerID returns the id withPlayer stored in ctx.
func playerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// signPlayerToken creates an HS256 JWT whose subject is the player id.
func (s *Server) signPlayerToken(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.cfg.PlayerTokenDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parsePlayerToken validates tok and returns its subject.
func (s *Server) parsePlayerToken(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errNoSubject
	}
	return claims.Subject, nil
}

// setPlayerCookie writes the player token cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.PlayerCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the player cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.PlayerCookie); err == nil {
		return c.Value
	}
	return ""
}
