package repositories

import (
	"errors"
	"fmt"

	"agrofeira/internal/apperrors"

	"gorm.io/gorm"
)

// translate turns a GORM error into a typed domain error. notFound is the
// client message used when the row does not exist.
func translate(err error, op, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFound)
	default:
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.Internal(fmt.Sprintf("failed to %s", op), err)
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
