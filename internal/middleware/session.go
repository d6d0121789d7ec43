package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderCartID carries the cart session id in requests and responses.
const HeaderCartID = "X-Cart-ID"

// maxCartIDLength bounds client-supplied session ids.
const maxCartIDLength = 64

type cartIDKey struct{}

// SessionOptions configures the CartSession middleware.
type SessionOptions struct {
	CookieName string
	Secure     bool
	// MaxAge is the cookie lifetime. Zero makes it a browser-session cookie.
	MaxAge time.Duration
}

// CartSession resolves the cart session of a request from the X-Cart-ID
// header, then the session cookie, and otherwise starts a new session. The
// id is stored in the request context and echoed in the X-Cart-ID header.
func CartSession(opts SessionOptions, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderCartID)
			if !validCartID(id) {
				id = ""
				if cookie, err := r.Cookie(opts.CookieName); err == nil && validCartID(cookie.Value) {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
				logger.Debug().Str("cart_id", id).Msg("new cart session")
			}

			cookie := &http.Cookie{
				Name:     opts.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			if opts.MaxAge > 0 {
				cookie.MaxAge = int(opts.MaxAge.Seconds())
			}
			http.SetCookie(w, cookie)
			w.Header().Set(HeaderCartID, id)

			next.ServeHTTP(w, r.WithContext(WithCartID(r.Context(), id)))
		})
	}
}

// WithCartID returns a copy of ctx carrying the cart session id.
func WithCartID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cartIDKey{}, id)
}

// CartIDFromContext returns the cart session id stored by CartSession.
func CartIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cartIDKey{}).(string)
	return id, ok && id != ""
}

// validCartID accepts opaque ids made of letters, digits, '-' and '_'.
func validCartID(id string) bool {
	if id == "" || len(id) > maxCartIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
