package validate

import (
	"autoDetailing/internal/models"
	"github.com/go-playground/validator/v10"
)

const TagService = "detailing_service"

// New returns a validator that also understands the detailing_service tag.
func New() *validator.Validate {
	v := validator.New()

	// RegisterValidation only fails on an empty tag or a nil func.
	_ = v.RegisterValidation(TagService, func(fl validator.FieldLevel) bool {
		return models.Service(fl.Field().String()).Valid()
	})

	return v
}
