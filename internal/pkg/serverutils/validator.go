// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"pixfusion-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts the first failure into a
// field-level ValidationError.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperror.NewValidation(
				strings.ToLower(fe.Field()),
				fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			)
		}
		return apperror.NewValidation("", err.Error())
	}
	return nil
}
