package errors

var ErrOptimisticLock = Conflict("task was modified concurrently, retry the request")
