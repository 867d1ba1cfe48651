package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError rejects user input before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// check validates req and reports the first failing field.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.StructField(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	label, _, element := strings.Cut(fe.Field(), "[")
	if element {
		return fmt.Sprintf("%s cannot contain an empty entry", label)
	}

	switch fe.Tag() {
	case "required", "notblank":
		return label + " cannot be empty"
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entry", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

type loginRequest struct {
	Email    string `label:"Email" validate:"notblank,email"`
	Password string `label:"Password" validate:"notblank"`
}

type registerRequest struct {
	Email       string `label:"Email" validate:"notblank,email"`
	Password    string `label:"Password" validate:"notblank,min=6"`
	DisplayName string `label:"Display name" validate:"notblank"`
}

type profileRequest struct {
	DisplayName string `label:"Display name" validate:"notblank"`
}

type createChatRequest struct {
	Participants []string `label:"Participants" validate:"min=1,dive,notblank"`
}

type messageRequest struct {
	ChatID   string `label:"Chat id" validate:"notblank"`
	SenderID string `label:"Sender id" validate:"notblank"`
	Content  string `label:"Message" validate:"notblank"`
}

type idRequest struct {
	ID string `label:"Id" validate:"notblank"`
}

func requireID(label, id string) error {
	if err := check(idRequest{ID: id}); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Field: verr.Field, Message: label + " cannot be empty"}
		}
		return err
	}
	return nil
}
