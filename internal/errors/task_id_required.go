package errors

var ErrTaskIDRequired = Validation("task id is required")
