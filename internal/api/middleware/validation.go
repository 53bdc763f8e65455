package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"whisper-sync/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body, checks binding tags and then domain rules.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err, "request", "invalid JSON format")
	}
	return validateDomain(req)
}

// ValidateQuery binds and checks query parameters.
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindingError(err, "query", "invalid query parameters")
	}
	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func bindingError(err error, fallbackField, fallbackMessage string) error {
	validationErrors := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		for _, fieldError := range fieldErrs {
			field := strings.ToLower(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				validationErrors[field] = "is required"
			case "min", "gte":
				validationErrors[field] = "is too small"
			case "max", "lte":
				validationErrors[field] = "is too large"
			case "oneof":
				validationErrors[field] = "must be one of the allowed values"
			default:
				validationErrors[field] = "is invalid"
			}
		}
	} else {
		validationErrors[fallbackField] = fallbackMessage
	}

	return errors.NewValidationError("Validation failed", validationErrors)
}
