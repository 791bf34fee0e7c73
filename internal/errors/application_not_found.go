package errors

var ErrApplicationNotFound = NotFound("application not found")
