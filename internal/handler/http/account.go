package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

const (
	registeredMessage   = "Your account has been created! You are now able to log in"
	badLoginMessage     = "Login Unsuccessful. Please check email and password"
	badPasswordMessage  = "Password is incorrect."
	accountSavedMessage = "Your account has been updated!"
)

// multipart overhead allowed on top of the picture itself
const accountFormOverhead = 1 << 20

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Register", Form: models.RegistrationForm{}}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "register.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := models.RegistrationForm{
		Username:        formValue(r, validators.FieldUsername),
		Email:           formValue(r, validators.FieldEmail),
		Password:        r.PostFormValue(validators.FieldPassword),
		ConfirmPassword: r.PostFormValue(validators.FieldConfirmPassword),
	}
	page.Form = form

	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "register.html", page)
		return
	}

	_, err := h.services.AuthService.RegisterUser(r.Context(), form)
	if err != nil {
		h.renderFormErrors(w, r, uniquenessError(err), "register.html", page)
		return
	}

	h.flash(r, models.FlashSuccess, registeredMessage)
	h.redirect(w, r, "/login")
}

// login checks the credentials, starts a session and follows a same-host
// "next" target. A foreign "next" is answered with 400 and no session.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Login", Form: models.LoginForm{}}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "login.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := models.LoginForm{
		Email:    formValue(r, validators.FieldEmail),
		Password: r.PostFormValue(validators.FieldPassword),
		Remember: formBool(r, "remember"),
	}
	page.Form = models.LoginForm{Email: form.Email, Remember: form.Remember}

	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "login.html", page)
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), form.Email, form.Password)
	if errors.Is(err, service.ErrWrongCredentials) {
		h.flash(r, models.FlashDanger, badLoginMessage)
		h.render(w, r, http.StatusOK, "login.html", page)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	next, err := safeNext(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	token, err := h.services.SessionService.CreateSession(r.Context(), user, form.Remember)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.setSessionCookie(w, token)

	if next == "" {
		next = "/home"
	}
	h.redirect(w, r, next)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, sessionCookieName)
	h.redirect(w, r, "/home")
}

// reauthenticate asks a logged-in user for the password again and re-issues
// the session with a new authentication time.
func (h *Handler) reauthenticate(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Confirm Password"}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "reauthenticate.html", page)
		return
	}

	if err := parseForm(r); err != nil {
		h.handleError(w, r, err)
		return
	}

	form := models.ReauthenticateForm{Password: r.PostFormValue(validators.FieldPassword)}
	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "reauthenticate.html", page)
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	user, err := h.services.AuthService.Reauthenticate(r.Context(), principal.ID(), form.Password)
	if errors.Is(err, service.ErrWrongCredentials) {
		h.flash(r, models.FlashDanger, badPasswordMessage)
		h.render(w, r, http.StatusOK, "reauthenticate.html", page)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	next, err := safeNext(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	refreshed := *principal
	refreshed.User = user
	token, err := h.services.SessionService.Refresh(r.Context(), refreshed)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.setSessionCookie(w, token)

	if next == "" {
		next = "/home"
	}
	h.redirect(w, r, next)
}

// account shows and updates the profile of the current user, including an
// optional jpg/png picture upload.
func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	principal, _ := utils.GetPrincipalFromContext(r.Context())
	user := principal.User

	page := pageData{
		Title:    "Account",
		Form:     models.AccountForm{Username: user.Username, Email: user.Email},
		ImageURL: h.services.PictureService.PictureURL(user.ImageFile),
	}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "account.html", page)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxPictureBytes+accountFormOverhead)
	if err := r.ParseMultipartForm(service.MaxPictureBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderFormErrors(w, r, fieldError(validators.FieldPicture, validators.MsgPictureTooLarge), "account.html", page)
			return
		}
		h.handleError(w, r, errors.Join(ErrMalformedForm, err))
		return
	}

	form := models.AccountForm{
		Username: formValue(r, validators.FieldUsername),
		Email:    formValue(r, validators.FieldEmail),
	}
	file, header, err := r.FormFile(validators.FieldPicture)
	switch {
	case err == nil:
		defer file.Close()
		form.PictureName = header.Filename
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.handleError(w, r, errors.Join(ErrMalformedForm, err))
		return
	}
	page.Form = models.AccountForm{Username: form.Username, Email: form.Email}

	if err := h.validator.Validate(r.Context(), form); err != nil {
		h.renderFormErrors(w, r, err, "account.html", page)
		return
	}

	update := models.ProfileUpdate{
		Username: &form.Username,
		Email:    &form.Email,
	}
	if form.PictureName != "" {
		name, err := h.services.PictureService.SaveProfilePicture(r.Context(), form.PictureName, file)
		switch {
		case errors.Is(err, service.ErrUnsupportedPicture):
			h.renderFormErrors(w, r, fieldError(validators.FieldPicture, validators.MsgPictureExtension), "account.html", page)
			return
		case errors.Is(err, service.ErrPictureTooLarge):
			h.renderFormErrors(w, r, fieldError(validators.FieldPicture, validators.MsgPictureTooLarge), "account.html", page)
			return
		case err != nil:
			h.handleError(w, r, err)
			return
		}
		update.ImageFile = &name
	}

	if _, err := h.services.AuthService.UpdateProfile(r.Context(), user.UserID, update); err != nil {
		if update.ImageFile != nil {
			h.discardPicture(r, *update.ImageFile)
		}
		h.renderFormErrors(w, r, uniquenessError(err), "account.html", page)
		return
	}

	h.flash(r, models.FlashSuccess, accountSavedMessage)
	h.redirect(w, r, "/account")
}

// discardPicture removes a picture stored for a profile update that did not
// go through.
func (h *Handler) discardPicture(r *http.Request, name string) {
	if err := h.services.PictureService.DeleteProfilePicture(r.Context(), name); err != nil {
		logger.FromRequest(r).Err(err).Str("picture", name).Msg("failed to remove orphaned picture")
	}
}

// uniquenessError turns a taken username or email into a field error and
// passes every other error through.
func uniquenessError(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return fieldError(validators.FieldUsername, validators.MsgUsernameTaken)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fieldError(validators.FieldEmail, validators.MsgEmailTaken)
	}
	return err
}
