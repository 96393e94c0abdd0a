package adapter

import "errors"

var (
	ErrMailNotSent     = errors.New("mail was not sent")
	ErrNoRecipients    = errors.New("mail has no recipients")
	ErrMailNotComposed = errors.New("mail could not be composed")
)
