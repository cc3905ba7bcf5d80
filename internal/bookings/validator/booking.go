package validator

import (
	"errors"
	"fmt"
	"strings"

	"gudlft/pkg/logger"
	"gudlft/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		log.Fatal("Failed to register 'notblank' validator",
			"error", err,
		)
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validateNotBlank rejects strings made only of whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func (v *BookingValidator) ValidatePurchase(req *model.PurchaseRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}

	if strings.TrimSpace(string(req.Places)) == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "Places",
				Message: "Places is required",
			},
		}
	}
	return nil
}

func (v *BookingValidator) ValidateSummary(req *model.SummaryRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *BookingValidator) ValidateClub(club *model.Club) error {
	if err := v.validate.Struct(club); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *BookingValidator) ValidateCompetition(comp *model.Competition) error {
	if err := v.validate.Struct(comp); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *BookingValidator) translate(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return v.translateValidationErrors(validationErrs)
	}
	return err
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required", "notblank":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

// Details flattens validation errors into the map shape used in API error details.
func Details(err error) map[string]any {
	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	details := make(map[string]any, len(validationErrs))
	for _, e := range validationErrs {
		details[e.Field] = e.Message
	}
	return details
}
