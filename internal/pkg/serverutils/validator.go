package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"todolist-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a parsed request body and
// folds failures into the validation branch of the error taxonomy.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("%w: field %s failed on %s",
				apperror.ErrValidation, field.Field(), field.Tag())
		}
		return err
	}
	return nil
}
