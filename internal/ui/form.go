package ui

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/validation"
)

// MinReasonLength is the shortest reason the form accepts, in UTF-16
// code units as a browser counts it, so one emoji counts as two.
const MinReasonLength = 20

// Form holds what the user typed into the registration form.
type Form struct {
	Name   string     `validate:"required"`
	Email  string     `validate:"required,simpleemail"`
	Role   types.Role `validate:"required,role"`
	Reason string     `validate:"required,utf16min=20"`
}

// NewForm returns an empty form with the default role selected.
func NewForm() Form {
	return Form{Role: types.RoleIntern}
}

// Input converts the form into the API payload.
func (f Form) Input() types.ApplicantInput {
	return types.ApplicantInput{
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Reason: f.Reason,
	}
}

// FieldErrors maps a form field ("name", "email", "role", "reason") to
// the message shown under it.
type FieldErrors map[string]string

// fieldMessages is keyed by struct field, then by failing tag.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required": "Name is required.",
	},
	"Email": {
		"required":                 "Email is required.",
		validation.TagSimpleEmail: "Email is not valid.",
	},
	"Role": {
		"required":          "Please choose a role.",
		validation.TagRole: "Please choose a role.",
	},
	"Reason": {
		"required":             "Please tell us why you're applying.",
		validation.TagUTF16Min: "Please elaborate a bit more (at least 20 characters).",
	},
}

// Validate checks the form and returns one message per failing field.
// An empty result means the form may be submitted.
func (f Form) Validate(v *validator.Validate) FieldErrors {
	errs := FieldErrors{}

	err := v.Struct(f)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "Form could not be validated."
		return errs
	}

	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fe.StructField() + " is invalid."
		}
		errs[strings.ToLower(fe.StructField())] = msg
	}

	return errs
}
