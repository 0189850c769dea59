package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	// Exemple : +221771234567 ou 771234567
	senegalTelephoneRegex = regexp.MustCompile(`^(?:\+221|0)?(77|78|70|76)\d{7}$`)
	// NCI : 13 chiffres
	senegalNciRegex = regexp.MustCompile(`^\d{13}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("senegal_telephone", validateSenegalTelephone)
	validate.RegisterValidation("senegal_nci", validateSenegalNci)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateSenegalTelephone(fl validator.FieldLevel) bool {
	return senegalTelephoneRegex.MatchString(fl.Field().String())
}

func validateSenegalNci(fl validator.FieldLevel) bool {
	return senegalNciRegex.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required", "required_without":
				message = fieldError.Field() + " est requis"
			case "email":
				message = "L'email doit être une adresse email valide"
			case "min":
				message = fieldError.Field() + " doit être supérieur ou égal à " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " ne peut pas dépasser " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " doit être parmi : " + fieldError.Param()
			case "uuid":
				message = fieldError.Field() + " doit être un UUID valide"
			case "senegal_telephone":
				message = "Le numéro de téléphone n'est pas un numéro sénégalais valide"
			case "senegal_nci":
				message = "Le NCI n'est pas valide"
			default:
				message = fieldError.Field() + " est invalide"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}
