package model

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the list of field errors found in one input. It is
// returned as error only when non-empty.
type ValidationErrors []FieldError

func (x ValidationErrors) Error() string {
	msgs := make([]string, len(x))
	for i, e := range x {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first field error.
func (x ValidationErrors) First() string {
	if len(x) == 0 {
		return ""
	}
	return x[0].Message
}

// Context keys for error values
const (
	IDKey    = "id"
	FieldKey = "field"
	EmailKey = "email"
)

var (
	phonePattern    = regexp.MustCompile(`^[0-9+\-() ]+$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)
)

type checker struct {
	errs ValidationErrors
}

func (c *checker) add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) str(field, value string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(value)
	switch {
	case strings.TrimSpace(value) == "":
		c.add(field, `"%s" is required`, field)
	case n < minLen:
		c.add(field, `"%s" length must be at least %d characters long`, field, minLen)
	case n > maxLen:
		c.add(field, `"%s" length must be less than or equal to %d characters long`, field, maxLen)
	default:
		return true
	}
	return false
}

func (c *checker) number(field string, value *float64, minVal, maxVal float64) {
	switch {
	case value == nil:
		c.add(field, `"%s" is required`, field)
	case *value < minVal:
		c.add(field, `"%s" must be greater than or equal to %v`, field, minVal)
	case *value > maxVal:
		c.add(field, `"%s" must be less than or equal to %v`, field, maxVal)
	}
}

func (c *checker) id(field string, value ID) {
	if value == "" {
		c.add(field, `"%s" is required`, field)
		return
	}
	if value.Validate() != nil {
		c.add(field, `"%s" must be a valid ID`, field)
	}
}

func (c *checker) email(field, value string) {
	if !c.str(field, value, 5, 255) {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		c.add(field, `"%s" must be a valid email`, field)
	}
}

func (c *checker) result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
