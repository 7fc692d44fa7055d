package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// RegistrationInput is the candidate registration payload.
type RegistrationInput struct {
	Name     string  `json:"name" validate:"required,trimmedmin"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,haslower,hasupper,hasdigit"`
	Location *string `json:"location,omitempty"`
}

// ProfileUpdateInput is the candidate profile update payload.
type ProfileUpdateInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,trimmedmin"`
	Location *string `json:"location,omitempty"`
}

// Validator checks request payloads. It performs no I/O and is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the password and name rules registered.
func New() *Validator {
	v := validator.New()
	// RegisterValidation only errors on an empty tag or nil func.
	_ = v.RegisterValidation("trimmedmin", hasTrimmedMin)
	_ = v.RegisterValidation("haslower", hasLower)
	_ = v.RegisterValidation("hasupper", hasUpper)
	_ = v.RegisterValidation("hasdigit", hasDigit)
	return &Validator{validate: v}
}

// ValidateRegistration normalizes the payload and returns field-level
// violations, or nil if the payload is valid. Running it twice on the same
// payload yields the same verdict.
func (v *Validator) ValidateRegistration(in RegistrationInput) (RegistrationInput, []FieldError) {
	in.Name = strings.TrimSpace(in.Name)
	if errs := v.validate.Struct(in); errs != nil {
		return in, toFieldErrors(errs)
	}
	return in, nil
}

// ValidateProfileUpdate normalizes and validates a profile update payload.
func (v *Validator) ValidateProfileUpdate(in ProfileUpdateInput) (ProfileUpdateInput, []FieldError) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if errs := v.validate.Struct(in); errs != nil {
		return in, toFieldErrors(errs)
	}
	return in, nil
}

func toFieldErrors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Msg: "invalid payload"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out = append(out, FieldError{Field: field, Msg: messageFor(field, fe.Tag())})
	}
	return out
}

func messageFor(field, tag string) string {
	switch field {
	case "name":
		return "Name must be at least 2 characters long"
	case "email":
		return "Please provide a valid email address"
	case "password":
		switch tag {
		case "required", "min":
			return "Password must be at least 8 characters long"
		case "haslower":
			return "Password must contain at least one lowercase letter"
		case "hasupper":
			return "Password must contain at least one uppercase letter"
		case "hasdigit":
			return "Password must contain at least one number"
		}
	}
	return "Invalid value for " + field
}

func hasTrimmedMin(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) >= 2
}

func hasLower(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsLower) >= 0
}

func hasUpper(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsUpper) >= 0
}

func hasDigit(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsDigit) >= 0
}
