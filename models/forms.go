package models

// RegistrationForm is submitted by POST /register.
type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginForm is submitted by POST /login.
type LoginForm struct {
	Email    string
	Password string
	Remember bool
}

// ReauthenticateForm is submitted by POST /reauthenticate.
type ReauthenticateForm struct {
	Password string
}

// AccountForm is submitted by POST /account. PictureName is the client-side
// file name of the uploaded picture, empty when none was sent.
type AccountForm struct {
	Username    string
	Email       string
	PictureName string
}

// PostForm is submitted by POST /post/new and POST /post/{id}/update.
type PostForm struct {
	Title   string
	Content string
	Version int64
}

// RequestResetForm is submitted by POST /reset_password.
type RequestResetForm struct {
	Email string
}

// ResetPasswordForm is submitted by POST /reset_password/{token}.
type ResetPasswordForm struct {
	Password        string
	ConfirmPassword string
}

// Email is an outbound mail message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}
