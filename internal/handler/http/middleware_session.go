package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

const sessionCookieName = "session"

const (
	loginMessage   = "Please log in to access this page."
	refreshMessage = "To protect your account, please reauthenticate to access this page."
)

// withSession resolves the principal of the request from the signed session
// cookie and stores it in the request context under [utils.PrincipalCtxKey].
//
// A request without a cookie, or with a cookie that no longer verifies
// (expired, tampered, signed for a deleted user), continues as anonymous;
// the stale cookie is cleared so the browser stops sending it. Any other
// failure while loading the principal (e.g. the database being unreachable)
// ends the request with the 500 page.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := h.services.SessionService.LoadPrincipal(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				logger.FromRequest(r).Debug().Err(err).Msg("dropping session cookie")
				h.clearCookie(w, sessionCookieName)
				next.ServeHTTP(w, r)
				return
			}
			h.handleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), &principal)))
	})
}

// loginRequired sends anonymous visitors to /login, keeping the requested
// path in the "next" query parameter.
func (h *Handler) loginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := utils.GetPrincipalFromContext(r.Context())
		if !principal.IsAuthenticated() {
			h.flash(r, models.FlashInfo, loginMessage)
			h.redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// freshLoginRequired sends a principal whose password check is older than
// the configured freshness window to /reauthenticate. It expects
// loginRequired to run first.
func (h *Handler) freshLoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := utils.GetPrincipalFromContext(r.Context())
		if principal == nil || !principal.Fresh {
			h.flash(r, models.FlashInfo, refreshMessage)
			h.redirect(w, r, "/reauthenticate?next="+url.QueryEscape(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// anonymousOnly sends an authenticated principal to /home.
func (h *Handler) anonymousOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := utils.GetPrincipalFromContext(r.Context())
		if principal.IsAuthenticated() {
			h.redirect(w, r, "/home")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.secure,
		SameSite: http.SameSiteLaxMode,
	}
	// without "remember me" the cookie lives as long as the browser session
	if token.Session != nil && token.Session.Remember {
		cookie.Expires = token.ExpiresAt
	}
	http.SetCookie(w, cookie)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext returns the "next" query parameter when it stays on the serving
// host, "" when it is absent and ErrUnsafeRedirect otherwise.
func safeNext(r *http.Request) (string, error) {
	next := r.URL.Query().Get("next")
	if next == "" {
		return "", nil
	}
	if !utils.IsSafeRedirect(utils.RequestBaseURL(r), next) {
		return "", ErrUnsafeRedirect
	}
	return next, nil
}
