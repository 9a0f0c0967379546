package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var alphaRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// RegisterValidators adds the custom rules used in binding tags to the
// validator engine gin binds with.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return PasswordStrengthError(fl.Field().String()) == nil
	})
}

// PasswordStrengthError enforces the sign-up password policy: at least
// 8 characters with one uppercase, one lowercase and one digit.
func PasswordStrengthError(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

func ValidatePersonName(field, name string) error {
	if !alphaRegex.MatchString(name) {
		return fmt.Errorf("%s must contain only alphabets", field)
	}
	if len(name) < 1 || len(name) > 10 {
		return fmt.Errorf("%s must be between 1 and 10 characters long", field)
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidateFolderName(name string) error {
	if name == "" {
		return fmt.Errorf("folder name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("folder name too long (max 255 characters)")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("folder name contains invalid UTF-8 characters")
	}
	for _, char := range []string{"<", ">", ":", "\"", "|", "?", "*", "\x00", "/", "\\"} {
		if strings.Contains(name, char) {
			return fmt.Errorf("folder name contains invalid character: %s", char)
		}
	}
	return nil
}

func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("filename too long (max 255 characters)")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("filename contains invalid UTF-8 characters")
	}
	for _, char := range []string{"<", ">", "|", "\x00"} {
		if strings.Contains(name, char) {
			return fmt.Errorf("filename contains invalid character: %s", char)
		}
	}
	return nil
}
