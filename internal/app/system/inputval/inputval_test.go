package inputval

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"john@greenvalleyfarm.com", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type farmForm struct {
	Name  string
	Email string
	Time  string
}

func (f *farmForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required.Error("name is required"), validation.Length(0, 10).Error("name must be at most 10 characters")),
		validation.Field(&f.Email, validation.Required.Error("email is required")),
		validation.Field(&f.Time, ClockTime),
	)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		input      farmForm
		wantErrors bool
		wantFirst  string
	}{
		{"valid input", farmForm{Name: "John", Email: "john@example.com", Time: "06:00"}, false, ""},
		{"missing name", farmForm{Email: "john@example.com"}, true, "Name is required."},
		{"name too long", farmForm{Name: "VeryLongNameThatExceedsLimit", Email: "john@example.com"}, true, "Name must be at most 10 characters."},
		{"missing both keeps order", farmForm{}, true, "Name is required."},
		{"bad clock", farmForm{Name: "John", Email: "j@x.io", Time: "25:00"}, true, "Must be a time in HH:MM format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(&tt.input, "Name", "Email", "Time")
			if res.HasErrors() != tt.wantErrors {
				t.Fatalf("HasErrors = %v, want %v (%s)", res.HasErrors(), tt.wantErrors, res.All())
			}
			if tt.wantErrors && res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestFromError_NonFieldError(t *testing.T) {
	res := FromError(errors.New("boom"))
	if res.First() != "boom" {
		t.Errorf("First() = %q, want boom", res.First())
	}
}

func TestResult_All(t *testing.T) {
	var nilResult *Result
	if nilResult.All() != "" || nilResult.HasErrors() {
		t.Error("nil result should report no errors")
	}

	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if got := r.All(); got != "Error 1; Error 2" {
		t.Errorf("All() = %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"4.50", 4.5, true},
		{" 6 ", 6, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"-1", 0, false},
		{"4.5kg", 4.5, true},
		{"12.", 12, true},
		{".75", 0.75, true},
		{"1e2x", 100, true},
		{"3 dozen", 3, true},
		{"$4", 0, true},
		{"-2.5lb", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"120", 120, true},
		{"12.5", 12, true},
		{" 48 eggs ", 48, true},
		{"1e3", 1, true},
		{"x", 0, true},
		{"x12", 0, true},
		{"", 0, true},
		{"-3", 0, false},
		{"-3.9", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCount(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
