package dto

import "github.com/go-playground/validator/v10"

// validate instancia única del validador de structs (tags `validate`).
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate valida un DTO según sus tags. Las reglas que involucran montos
// decimales se validan en los casos de uso (el validador no entiende
// decimal.Decimal).
func Validate(s any) error {
	return validate.Struct(s)
}
