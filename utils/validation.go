package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"drivedash/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateShareRequest checks a share form before it is submitted.
func ValidateShareRequest(req models.ShareRequest) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return fmt.Errorf("email cannot be empty")
		}
		return fmt.Errorf("invalid email format")
	case "Role":
		return fmt.Errorf("invalid role: %s. Allowed roles: viewer, editor", req.Role)
	case "ItemType":
		return fmt.Errorf("invalid item type: %s", req.ItemType)
	default:
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	}
}

// ValidateItemName checks a folder or file name the way the content service
// does on create and rename.
func ValidateItemName(name string) error {
	if IsBlank(name) {
		return ErrEmptyName
	}

	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00", "/", "\\"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("name contains invalid character: %s", char)
		}
	}

	return nil
}
