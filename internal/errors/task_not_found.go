package errors

var ErrTaskNotFound = NotFound("task not found")
