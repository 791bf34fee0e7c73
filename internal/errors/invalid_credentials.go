package errors

var ErrInvalidCredentials = Unauthorized("invalid email or password")
