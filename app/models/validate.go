package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs the validate tags declared on a model or request struct.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
