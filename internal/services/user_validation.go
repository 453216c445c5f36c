package services

import (
	"strings"
	"unicode/utf8"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// Field names used in FieldError.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

var emailValidator = validator.New()

// ValidateUser checks a candidate's name and email. Every rule is evaluated so
// all failures are reported together; an empty result means the input is valid.
func ValidateUser(name, email string) []FieldError {
	var errs []FieldError

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: FieldName, Kind: KindRequired})
	case utf8.RuneCountInString(name) > models.UserNameMaxLength:
		errs = append(errs, FieldError{Field: FieldName, Kind: KindTooLong})
	}

	// length and format apply to the stored form; folding can lengthen an address
	email = NormalizeEmail(email)
	if email == "" {
		return append(errs, FieldError{Field: FieldEmail, Kind: KindRequired})
	}
	if utf8.RuneCountInString(email) > models.UserEmailMaxLength {
		errs = append(errs, FieldError{Field: FieldEmail, Kind: KindTooLong})
	}
	if emailValidator.Var(email, "email") != nil {
		errs = append(errs, FieldError{Field: FieldEmail, Kind: KindInvalidFormat})
	}

	return errs
}

// NormalizeEmail trims and case-folds an address. Uniqueness is decided on the
// normalized value, which is also what gets stored.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

func fieldLabel(field string) string {
	switch field {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	default:
		return field
	}
}

func fieldMaxLength(field string) int {
	switch field {
	case FieldName:
		return models.UserNameMaxLength
	case FieldEmail:
		return models.UserEmailMaxLength
	default:
		return 0
	}
}
