package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

const (
	resetMailSentMessage = "An email has been sent with instructions to reset your password."
	invalidTokenMessage  = "That is an invalid or expired token"
	passwordResetMessage = "Your password has been updated! You are now able to log in"
)

func (h *Handler) resetRequest(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Reset Password", Form: models.RequestResetForm{}}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "reset_request.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := models.RequestResetForm{Email: formValue(r, validators.FieldEmail)}
	page.Form = form
	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "reset_request.html", page)
		return
	}

	err := h.services.ResetService.RequestReset(r.Context(), form.Email, h.linkBase(r))
	if errors.Is(err, service.ErrNoAccountWithEmail) {
		h.renderFormErrors(w, r, fieldError(validators.FieldEmail, validators.MsgNoAccountForEmail), "reset_request.html", page)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(r, models.FlashInfo, resetMailSentMessage)
	h.redirect(w, r, "/login")
}

// resetToken lets the holder of a valid reset token choose a new password.
// Invalid and expired tokens go back to the request form with a warning.
func (h *Handler) resetToken(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.ResetService.VerifyToken(r.Context(), chi.URLParam(r, "token"))
	if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
		h.flash(r, models.FlashWarning, invalidTokenMessage)
		h.redirect(w, r, "/reset_password")
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	page := pageData{Title: "Reset Password", Form: models.ResetPasswordForm{}}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "reset_token.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := models.ResetPasswordForm{
		Password:        r.PostFormValue(validators.FieldPassword),
		ConfirmPassword: r.PostFormValue(validators.FieldConfirmPassword),
	}
	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "reset_token.html", page)
		return
	}

	if err := h.services.ResetService.ResetPassword(r.Context(), user, form.Password); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(r, models.FlashSuccess, passwordResetMessage)
	h.redirect(w, r, "/login")
}

// linkBase is the scheme and host put in front of mailed links. A configured
// external URL wins over the Host and X-Forwarded-Proto the client sent.
func (h *Handler) linkBase(r *http.Request) string {
	if h.externalURL != "" {
		return h.externalURL
	}
	return utils.RequestBaseURL(r)
}
