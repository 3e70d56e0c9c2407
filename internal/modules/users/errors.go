package users

import "errors"

var (
	ErrEmailExists       = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong current password")
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("was not subscribed")
)
