package errors

var ErrEmailTaken = Conflict("email is already registered")
