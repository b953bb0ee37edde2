package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	Photo     string `json:"photo,omitempty" validate:"omitempty,url"`
	Internal  string `json:"-" validate:"omitempty,max=5"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	s := signupForm{Email: "jane@example.com", Password: "SecurePass123", FirstName: "Jane"}
	assert.NoError(t, Validate(s))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "first_name")
	assert.NotContains(t, fields, "Email")
	assert.NotContains(t, fields, "FirstName")
}

func TestValidate_JSONNameStripsOptions(t *testing.T) {
	s := signupForm{Email: "jane@example.com", Password: "SecurePass123", FirstName: "Jane", Photo: "not-a-url"}
	err := Validate(s)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "photo")
	assert.Equal(t, "must be a valid URL", fields["photo"])
}

func TestValidate_DashTagFallsBackToStructName(t *testing.T) {
	s := signupForm{Email: "jane@example.com", Password: "SecurePass123", FirstName: "Jane", Internal: "too-long"}
	err := Validate(s)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "Internal")
}

func TestValidate_MissingRequired(t *testing.T) {
	s := signupForm{Email: "jane@example.com", Password: "SecurePass123"}
	err := Validate(s)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["first_name"])
}

func TestValidate_MinLength(t *testing.T) {
	s := signupForm{Email: "jane@example.com", Password: "short", FirstName: "Jane"}
	err := Validate(s)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Equal(t, "must be at least 8 characters", fields["password"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := signupForm{Email: "not-an-email", Password: "SecurePass123", FirstName: "Jane"}
	err := Validate(s)
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'email'")
	assert.Contains(t, err.Error(), "is required")
}
