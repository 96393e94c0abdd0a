package validators

import (
	"context"
	"fmt"
	"net/mail"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog/models"
)

// Field names as used by the HTML forms.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldPicture         = "picture"
	FieldTitle           = "title"
	FieldContent         = "content"
	FieldVersion         = "version"
)

// Messages shown to the user.
const (
	MsgRequired          = "This field is required."
	MsgUsernameLength    = "Field must be between 2 and 20 characters long."
	MsgInvalidEmail      = "Invalid email address."
	MsgEmailTooLong      = "Field cannot be longer than 120 characters."
	MsgTitleTooLong      = "Field cannot be longer than 100 characters."
	MsgPasswordMismatch  = "Field must be equal to password."
	MsgPasswordTooLong   = "Field cannot be longer than 72 bytes."
	MsgPictureExtension  = "File does not have an approved extension: jpg, png"
	MsgPictureTooLarge   = "File is too large."
	MsgInvalidVersion    = "Invalid version."
	MsgUsernameTaken     = "That username is taken. Please choose a different one."
	MsgEmailTaken        = "That email is taken. Please choose a different one."
	MsgNoAccountForEmail = "There is no account with that email. You must register first."
)

const (
	usernameMinLen = 2
	usernameMaxLen = 20
	emailMaxLen    = 120
	titleMaxLen    = 100

	// bcrypt rejects longer input
	passwordMaxBytes = 72
)

var allowedPictureExtensions = []string{"jpg", "png"}

// FormValidator implements Validator for every models.*Form type.
// Values and pointers are both accepted.
type FormValidator struct{}

func NewFormValidator() Validator {
	return &FormValidator{}
}

// Validate dispatches to the schema of obj's type. When fields are given
// only those fields are checked. A failed check returns FormErrors.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch form := obj.(type) {
	case models.RegistrationForm:
		return v.validateRegistration(form, fields...)
	case *models.RegistrationForm:
		return v.validateRegistration(*form, fields...)

	case models.LoginForm:
		return v.validateLogin(form, fields...)
	case *models.LoginForm:
		return v.validateLogin(*form, fields...)

	case models.ReauthenticateForm:
		return v.validateReauthenticate(form, fields...)
	case *models.ReauthenticateForm:
		return v.validateReauthenticate(*form, fields...)

	case models.AccountForm:
		return v.validateAccount(form, fields...)
	case *models.AccountForm:
		return v.validateAccount(*form, fields...)

	case models.PostForm:
		return v.validatePost(form, fields...)
	case *models.PostForm:
		return v.validatePost(*form, fields...)

	case models.RequestResetForm:
		return v.validateRequestReset(form, fields...)
	case *models.RequestResetForm:
		return v.validateRequestReset(*form, fields...)

	case models.ResetPasswordForm:
		return v.validateResetPassword(form, fields...)
	case *models.ResetPasswordForm:
		return v.validateResetPassword(*form, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *FormValidator) validateRegistration(form models.RegistrationForm, fields ...string) error {
	want, err := scope(fields, FieldUsername, FieldEmail, FieldPassword, FieldConfirmPassword)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldUsername) {
		checkUsername(errs, form.Username)
	}
	if want(FieldEmail) {
		checkEmail(errs, form.Email)
	}
	if want(FieldPassword) {
		checkPassword(errs, form.Password)
	}
	if want(FieldConfirmPassword) {
		checkConfirmation(errs, form.Password, form.ConfirmPassword)
	}
	return errs.orNil()
}

func (v *FormValidator) validateLogin(form models.LoginForm, fields ...string) error {
	want, err := scope(fields, FieldEmail, FieldPassword)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldEmail) {
		checkEmail(errs, form.Email)
	}
	if want(FieldPassword) {
		checkRequired(errs, FieldPassword, form.Password)
	}
	return errs.orNil()
}

func (v *FormValidator) validateReauthenticate(form models.ReauthenticateForm, fields ...string) error {
	want, err := scope(fields, FieldPassword)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldPassword) {
		checkPassword(errs, form.Password)
	}
	return errs.orNil()
}

func (v *FormValidator) validateAccount(form models.AccountForm, fields ...string) error {
	want, err := scope(fields, FieldUsername, FieldEmail, FieldPicture)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldUsername) {
		checkUsername(errs, form.Username)
	}
	if want(FieldEmail) {
		checkEmail(errs, form.Email)
	}
	// the picture is optional
	if want(FieldPicture) && form.PictureName != "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(form.PictureName), "."))
		if !slices.Contains(allowedPictureExtensions, ext) {
			errs.Add(FieldPicture, MsgPictureExtension)
		}
	}
	return errs.orNil()
}

func (v *FormValidator) validatePost(form models.PostForm, fields ...string) error {
	want, err := scope(fields, FieldTitle, FieldContent, FieldVersion)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldTitle) && checkRequired(errs, FieldTitle, form.Title) {
		if utf8.RuneCountInString(form.Title) > titleMaxLen {
			errs.Add(FieldTitle, MsgTitleTooLong)
		}
	}
	if want(FieldContent) {
		checkRequired(errs, FieldContent, form.Content)
	}
	if want(FieldVersion) && form.Version < 0 {
		errs.Add(FieldVersion, MsgInvalidVersion)
	}
	return errs.orNil()
}

func (v *FormValidator) validateRequestReset(form models.RequestResetForm, fields ...string) error {
	want, err := scope(fields, FieldEmail)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldEmail) {
		checkEmail(errs, form.Email)
	}
	return errs.orNil()
}

func (v *FormValidator) validateResetPassword(form models.ResetPasswordForm, fields ...string) error {
	want, err := scope(fields, FieldPassword, FieldConfirmPassword)
	if err != nil {
		return err
	}

	errs := FormErrors{}
	if want(FieldPassword) {
		checkPassword(errs, form.Password)
	}
	if want(FieldConfirmPassword) {
		checkConfirmation(errs, form.Password, form.ConfirmPassword)
	}
	return errs.orNil()
}

// scope returns a predicate telling whether a field takes part in the
// validation. No fields means all of known.
func scope(fields []string, known ...string) (func(string) bool, error) {
	if len(fields) == 0 {
		return func(string) bool { return true }, nil
	}
	for _, f := range fields {
		if !slices.Contains(known, f) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}
	return func(f string) bool { return slices.Contains(fields, f) }, nil
}

// checkRequired reports whether value is present, recording an error if not.
func checkRequired(errs FormErrors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, MsgRequired)
		return false
	}
	return true
}

func checkUsername(errs FormErrors, username string) {
	if !checkRequired(errs, FieldUsername, username) {
		return
	}
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		errs.Add(FieldUsername, MsgUsernameLength)
	}
}

func checkEmail(errs FormErrors, email string) {
	if !checkRequired(errs, FieldEmail, email) {
		return
	}
	if len(email) > emailMaxLen {
		errs.Add(FieldEmail, MsgEmailTooLong)
		return
	}
	// bare addresses only, no display names
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add(FieldEmail, MsgInvalidEmail)
		return
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") {
		errs.Add(FieldEmail, MsgInvalidEmail)
	}
}

func checkPassword(errs FormErrors, password string) {
	if !checkRequired(errs, FieldPassword, password) {
		return
	}
	if len(password) > passwordMaxBytes {
		errs.Add(FieldPassword, MsgPasswordTooLong)
	}
}

func checkConfirmation(errs FormErrors, password, confirmation string) {
	if !checkRequired(errs, FieldConfirmPassword, confirmation) {
		return
	}
	if password != confirmation {
		errs.Add(FieldConfirmPassword, MsgPasswordMismatch)
	}
}
