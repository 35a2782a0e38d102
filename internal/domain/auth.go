package domain

import "errors"

var (
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	ErrCredentialsInvalid   = errors.New("could not validate credentials")
	ErrTokenExpired         = errors.New("token has expired")
	ErrForbidden            = errors.New("not enough permissions")
)

// TokenTypeBearer is echoed back to clients alongside every access token.
const TokenTypeBearer = "Bearer"
