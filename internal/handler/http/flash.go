package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

const flashCookieName = "flashes"

type flashCtxKey struct{}

// flashBag holds the flash messages of one request: those carried in by the
// cookie plus those added while handling it.
type flashBag struct {
	messages   []models.Flash
	fromCookie bool
}

// withFlashes loads pending flash messages from the signed cookie into the
// request context.
func (h *Handler) withFlashes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bag := &flashBag{}
		if cookie, err := r.Cookie(flashCookieName); err == nil {
			bag.messages = h.decodeFlashes(cookie.Value)
			bag.fromCookie = true
		}

		ctx := context.WithValue(r.Context(), flashCtxKey{}, bag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func flashesFromRequest(r *http.Request) *flashBag {
	bag, _ := r.Context().Value(flashCtxKey{}).(*flashBag)
	return bag
}

// flash queues a one-shot message for the next rendered page.
func (h *Handler) flash(r *http.Request, category, message string) {
	if bag := flashesFromRequest(r); bag != nil {
		bag.messages = append(bag.messages, models.Flash{Category: category, Message: message})
	}
}

// takeFlashes drains the queue for a page being rendered now.
func (h *Handler) takeFlashes(w http.ResponseWriter, r *http.Request) []models.Flash {
	bag := flashesFromRequest(r)
	if bag == nil {
		return nil
	}

	messages := bag.messages
	bag.messages = nil
	if bag.fromCookie {
		h.clearCookie(w, flashCookieName)
		bag.fromCookie = false
	}

	return messages
}

// redirect persists queued flashes into the cookie and issues a 302.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if bag := flashesFromRequest(r); bag != nil && len(bag.messages) > 0 {
		value, err := h.encodeFlashes(bag.messages)
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("error encoding flashes")
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     flashCookieName,
				Value:    value,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.cookies.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) encodeFlashes(messages []models.Flash) (string, error) {
	raw, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}

	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + utils.HashString(payload, h.cookies.secretKey), nil
}

// decodeFlashes returns nil for a cookie whose signature does not verify.
func (h *Handler) decodeFlashes(value string) []models.Flash {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || !utils.VerifyHashString(payload, signature, h.cookies.secretKey) {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}

	var messages []models.Flash
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}
