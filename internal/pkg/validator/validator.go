// Package validator wraps go-playground/validator for the `validate` tags on
// domain models. The seeder runs fixtures through it before inserting.
package validator

import validatorlib "github.com/go-playground/validator/v10"

var validate = validatorlib.New()

// Validate returns a field->failed-rule map, or nil when the value passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fields := make(map[string]string)
	for _, fe := range err.(validatorlib.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
