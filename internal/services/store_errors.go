package services

import (
	"errors"

	apperrors "helpify.com/helpify/internal/errors"
	repository "helpify.com/helpify/internal/repositories"
)

// storeErr translates a repository error into the domain taxonomy.
// notFound is returned for missing rows.
func storeErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrOptimisticLock):
		return apperrors.ErrOptimisticLock
	}
	return apperrors.Infrastructure(err)
}
