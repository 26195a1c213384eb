package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("a@b.com").Valid)
	assert.True(t, ValidateEmail("first.last@sub.domain.org").Valid)

	for _, bad := range []string{"abc", "", "a@b", "a b@c.com", "@b.com"} {
		res := ValidateEmail(bad)
		assert.False(t, res.Valid, "email %q", bad)
		assert.Equal(t, MsgInvalidEmail, res.Message)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("12345").Valid)
	assert.Equal(t, MsgShortPassword, ValidatePassword("12345").Message)
	assert.True(t, ValidatePassword("123456").Valid)
}

func TestValidateFullName(t *testing.T) {
	assert.False(t, ValidateFullName("").Valid)
	assert.False(t, ValidateFullName("   ").Valid)
	assert.True(t, ValidateFullName("Jane Doe").Valid)
}

func TestFormValidateGate(t *testing.T) {
	signup := NewForm(SignupFormConfig)

	results, ok := signup.Validate(map[string]string{
		"name": "Jane", "email": "a@b.com", "password": "123456",
	})
	assert.True(t, ok)
	for name, res := range results {
		assert.True(t, res.Valid, "field %s", name)
	}

	results, ok = signup.Validate(map[string]string{
		"name": "", "email": "abc", "password": "12345",
	})
	assert.False(t, ok)
	assert.Equal(t, MsgFullNameMissing, results["name"].Message)
	assert.Equal(t, MsgInvalidEmail, results["email"].Message)
	assert.Equal(t, MsgShortPassword, results["password"].Message)
}

// The login variant has no full-name rule; the variants differ only in
// their field sets, not in behavior.
func TestFormVariants(t *testing.T) {
	login := NewForm(LoginFormConfig)

	_, ok := login.Validate(map[string]string{"email": "a@b.com", "password": "123456"})
	assert.True(t, ok)

	assert.Equal(t, "/api/login", login.Endpoint())
	assert.Equal(t, "/api/signup", NewForm(SignupFormConfig).Endpoint())

	payload := login.Payload(map[string]string{"email": "a@b.com", "password": "123456", "name": "ignored"})
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "123456"}, payload)
}

func TestFormValidateField(t *testing.T) {
	signup := NewForm(SignupFormConfig)

	assert.False(t, signup.ValidateField("email", "abc").Valid)
	assert.True(t, signup.ValidateField("email", "a@b.com").Valid)
	assert.True(t, signup.ValidateField("unknown", "").Valid)
}
