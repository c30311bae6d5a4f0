package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func configureValidator(validate *validator.Validate) error {
	if err := validate.RegisterValidation("token", validateTokenShape); err != nil {
		return fmt.Errorf("error while registering token validation. Err: %w", err)
	}
	validate.RegisterTagNameFunc(useJSONTagNames)
	return nil
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// Token has to be three dot separated segments
// Only the shape is checked here, the token service checks the rest
func validateTokenShape(fl validator.FieldLevel) bool {
	return strings.Count(fl.Field().String(), ".") == 2
}
