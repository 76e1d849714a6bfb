package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

// LangCookie remembers the visitor's language choice.
const LangCookie = "lang"

type contextKey int

const (
	localeKey contextKey = iota
	sessionKey
	opsClaimsKey
)

// VisitorConfig controls the locale and session cookies.
type VisitorConfig struct {
	SessionCookie string
	SessionTTL    time.Duration
	DefaultLocale i18n.Locale
	Secure        bool
}

// Visitor resolves the display locale and the booking session of every
// request and stores both on the context. A missing or malformed session
// cookie is replaced with a fresh id.
func Visitor(cfg VisitorConfig) func(http.Handler) http.Handler {
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "jw_session"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = i18n.English
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get("lang")
			var cookieLang string
			if c, err := r.Cookie(LangCookie); err == nil {
				cookieLang = c.Value
			}
			locale := i18n.Negotiate(query, cookieLang, r.Header.Get("Accept-Language"), cfg.DefaultLocale)
			if _, err := i18n.ParseLocale(query); err == nil {
				SetLocaleCookie(w, locale, cfg.Secure)
			}

			sessionID := ""
			if c, err := r.Cookie(cfg.SessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}
			// The cookie slides with the server-side idle TTL, so an
			// expiring cookie is re-issued on every visit.
			fresh := sessionID == ""
			if fresh {
				sessionID = uuid.NewString()
			}
			if fresh || cfg.SessionTTL > 0 {
				cookie := &http.Cookie{
					Name:     cfg.SessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				}
				if cfg.SessionTTL > 0 {
					cookie.MaxAge = int(cfg.SessionTTL.Seconds())
				}
				http.SetCookie(w, cookie)
			}

			ctx := WithLocale(r.Context(), locale)
			ctx = WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetLocaleCookie persists the language choice for a year.
func SetLocaleCookie(w http.ResponseWriter, locale i18n.Locale, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    locale.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithLocale(ctx context.Context, l i18n.Locale) context.Context {
	return context.WithValue(ctx, localeKey, l)
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// LocaleFromContext returns the negotiated locale, English when unset.
func LocaleFromContext(ctx context.Context) i18n.Locale {
	if l, ok := ctx.Value(localeKey).(i18n.Locale); ok && l != "" {
		return l
	}
	return i18n.English
}

// SessionIDFromContext returns the visitor's session id, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
