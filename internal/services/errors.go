package services

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidAction      = errors.New("invalid cart action")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
)
