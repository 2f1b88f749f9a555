// Package validation builds the go-playground validator shared by the
// API handlers and the web form, with the project's custom rules
// registered on it.
package validation

import (
	"regexp"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/orgconnect/internal/types"
)

// Tags of the custom rules registered by New.
const (
	TagRole        = "role"
	TagSimpleEmail = "simpleemail"
	// TagUTF16Min takes a length param (utf16min=20) and compares it with
	// UTF16Len, the way a browser counts a string's length.
	TagUTF16Min = "utf16min"
)

// simpleEmailRegex is deliberately loose: something, an @, something, a
// dot, something. Stricter checks belong to whoever sends the mail.
var simpleEmailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// New returns a validator with the custom rules registered.
//
// A *validator.Validate caches struct metadata, so callers should build
// one and reuse it instead of calling validator.New() per request.
func New() *validator.Validate {
	v := validator.New()

	// Registration only fails for an empty tag or a nil func, neither of
	// which can happen here.
	_ = v.RegisterValidation(TagRole, func(fl validator.FieldLevel) bool {
		return types.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation(TagSimpleEmail, func(fl validator.FieldLevel) bool {
		return IsSimpleEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(TagUTF16Min, func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return UTF16Len(fl.Field().String()) >= min
	})

	return v
}

// IsSimpleEmail reports whether s looks like an email address.
func IsSimpleEmail(s string) bool {
	return simpleEmailRegex.MatchString(s)
}

// UTF16Len counts s in UTF-16 code units: characters outside the Basic
// Multilingual Plane (most emoji) count twice.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
