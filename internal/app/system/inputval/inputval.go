// Package inputval turns ozzo-validation results into ordered, displayable messages.
package inputval

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// FieldError is one failed field.
type FieldError struct {
	Field   string
	Message string
}

// Result collects field errors in display order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any field failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Check validates v and orders field errors by order. Fields not named in
// order follow in the order ozzo reports them. A non-field error becomes a
// single entry with an empty Field.
func Check(v validation.Validatable, order ...string) *Result {
	return FromError(v.Validate(), order...)
}

// FromError converts an error returned by validation.ValidateStruct.
func FromError(err error, order ...string) *Result {
	res := &Result{}
	if err == nil {
		return res
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}

	seen := make(map[string]bool, len(verrs))
	for _, f := range order {
		if fe, ok := verrs[f]; ok && fe != nil {
			res.Errors = append(res.Errors, FieldError{Field: f, Message: message(fe)})
			seen[f] = true
		}
	}
	rest := make([]string, 0, len(verrs))
	for f := range verrs {
		if !seen[f] && verrs[f] != nil {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		res.Errors = append(res.Errors, FieldError{Field: f, Message: message(verrs[f])})
	}
	return res
}

func message(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ClockTime matches a 24-hour HH:MM time. Empty values pass; pair with Required.
var ClockTime = validation.Match(clockRe).Error("must be a time in HH:MM format")

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}
	return is.EmailFormat.Validate(s) == nil
}

var (
	amountPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	countPrefixRe  = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseAmount parses a non-negative decimal from the leading number in s,
// so "4.5kg" reads as 4.5. Input with no leading number yields 0 with
// ok=true, matching how the price and stock fields treat garbage. Negative
// values yield ok=false.
func ParseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(amountPrefixRe.FindString(strings.TrimSpace(s)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}

// ParseCount parses a non-negative integer from the leading digits in s,
// so "12.5" reads as 12. Otherwise it follows ParseAmount.
func ParseCount(s string) (int, bool) {
	v, err := strconv.Atoi(countPrefixRe.FindString(strings.TrimSpace(s)))
	if err != nil {
		return 0, true
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}
