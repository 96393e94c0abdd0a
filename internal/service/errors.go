package service

import "errors"

var (
	ErrWrongCredentials    = errors.New("login unsuccessful, please check email and password")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoAccountWithEmail  = errors.New("there is no account with that email")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid covers every way a session or reset token
	// can fail verification: bad signature, malformed, expired, unknown user.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrPostNotFound  = errors.New("post not found")
	ErrForbidden     = errors.New("forbidden")
	ErrEditConflict  = errors.New("post was changed by another edit")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrMailFailed    = errors.New("password reset mail could not be sent")
	ErrEmptyPassword = errors.New("password is empty")

	ErrUnsupportedPicture = errors.New("unsupported picture, only jpg and png are allowed")
	ErrPictureTooLarge    = errors.New("picture is too large")
)
