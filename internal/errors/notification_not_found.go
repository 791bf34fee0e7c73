package errors

var ErrNotificationNotFound = NotFound("notification not found")
