package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ArthurB95/linklink/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const userEmailKey ctxKey = "user_email"

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{jwtSecret: []byte(cfg.JWTSecret)}
}

// RequireSession verifies the preview session cookie. Preview pages are
// browser surfaces, so failures redirect to the login flow with the
// original path preserved.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(previewCookie)
		if err != nil {
			m.redirectToLogin(w, r)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			m.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/auth/google/login?next=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// UserEmail returns the authenticated email stored by RequireSession.
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}
