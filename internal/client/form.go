// Package client implements the form-driven counterpart to the auth API:
// field validation, submission, and durable token storage.
package client

import (
	"regexp"
	"strings"
)

// Validation messages shown next to a failing field.
const (
	MsgInvalidEmail    = "Enter a valid email address."
	MsgShortPassword   = "Password must be at least 6 characters."
	MsgFullNameMissing = "Full name required"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldResult is the outcome of validating a single field.
type FieldResult struct {
	Valid   bool
	Message string
}

// ValidateEmail checks the local@domain.tld shape.
func ValidateEmail(value string) FieldResult {
	if !emailPattern.MatchString(value) {
		return FieldResult{Message: MsgInvalidEmail}
	}
	return FieldResult{Valid: true}
}

// ValidatePassword requires at least 6 characters.
func ValidatePassword(value string) FieldResult {
	if len(value) < 6 {
		return FieldResult{Message: MsgShortPassword}
	}
	return FieldResult{Valid: true}
}

// ValidateFullName requires a non-empty trimmed name.
func ValidateFullName(value string) FieldResult {
	if strings.TrimSpace(value) == "" {
		return FieldResult{Message: MsgFullNameMissing}
	}
	return FieldResult{Valid: true}
}

// Field couples a payload key with its validation rule.
type Field struct {
	Name     string
	Validate func(string) FieldResult
}

// FormConfig describes one form variant: which endpoint it posts to and
// which fields make up its payload. The two variants are plain data, not
// branches on a form identity.
type FormConfig struct {
	Endpoint string
	Fields   []Field
}

// LoginFormConfig posts {email,password} to /api/login.
var LoginFormConfig = FormConfig{
	Endpoint: "/api/login",
	Fields: []Field{
		{Name: "email", Validate: ValidateEmail},
		{Name: "password", Validate: ValidatePassword},
	},
}

// SignupFormConfig posts {name,email,password} to /api/signup.
var SignupFormConfig = FormConfig{
	Endpoint: "/api/signup",
	Fields: []Field{
		{Name: "name", Validate: ValidateFullName},
		{Name: "email", Validate: ValidateEmail},
		{Name: "password", Validate: ValidatePassword},
	},
}

// Form is a configured form instance.
type Form struct {
	cfg FormConfig
}

// NewForm creates a form from its config.
func NewForm(cfg FormConfig) *Form {
	return &Form{cfg: cfg}
}

// Endpoint returns the API path the form submits to.
func (f *Form) Endpoint() string {
	return f.cfg.Endpoint
}

// ValidateField validates a single field by name, as on field blur.
// Unknown fields validate clean.
func (f *Form) ValidateField(name, value string) FieldResult {
	for _, field := range f.cfg.Fields {
		if field.Name == name {
			return field.Validate(value)
		}
	}
	return FieldResult{Valid: true}
}

// Validate runs every field rule against the given values. It returns the
// per-field results and whether the form as a whole may submit.
func (f *Form) Validate(values map[string]string) (map[string]FieldResult, bool) {
	results := make(map[string]FieldResult, len(f.cfg.Fields))
	ok := true
	for _, field := range f.cfg.Fields {
		res := field.Validate(values[field.Name])
		results[field.Name] = res
		if !res.Valid {
			ok = false
		}
	}
	return results, ok
}

// Payload assembles the JSON payload for submission from the form's fields.
func (f *Form) Payload(values map[string]string) map[string]string {
	payload := make(map[string]string, len(f.cfg.Fields))
	for _, field := range f.cfg.Fields {
		payload[field.Name] = values[field.Name]
	}
	return payload
}
