package service

import "errors"

var (
	ErrConflict         = errors.New("account already exists")
	ErrUnauthenticated  = errors.New("could not validate credentials")
	ErrForbidden        = errors.New("operation forbidden")
	ErrNotFound         = errors.New("not found")
	ErrTokenMismatch    = errors.New("invalid reset password token")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrTooManyTags   = errors.New("maximum amount of tags is 5")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrOwnPhoto      = errors.New("you cannot rate your own photo")
	ErrAlreadyRated  = errors.New("you have already rated this photo")
)
