package services

import (
	"errors"

	"storefront/internal/repositories"
	"storefront/pkg/apperror"
)

// lookupError converts a repository read failure into NOT_FOUND or INTERNAL_FAULT.
func lookupError(err error, entity, id string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.Newf(apperror.CodeNotFound, "%s %s not found", entity, id).WithDetail("id", id)
	}
	return apperror.Internal(err, "failed to load "+entity)
}

// writeError converts a repository write failure.
func writeError(err error, entity, action string) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return apperror.Newf(apperror.CodeDuplicate, "%s already exists", entity)
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.Newf(apperror.CodeNotFound, "%s not found", entity)
	}
	return apperror.Internal(err, "failed to "+action+" "+entity)
}
