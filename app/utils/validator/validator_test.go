package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

func TestNew(t *testing.T) {
	v := New()
	assert.NotNil(t, v)
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      registerForm
		wantErr    bool
		wantFields []string
	}{
		{
			name:    "valid form",
			input:   registerForm{Email: "bob@x.com", Password: "longenough"},
			wantErr: false,
		},
		{
			name:       "missing everything",
			input:      registerForm{},
			wantErr:    true,
			wantFields: []string{"email", "password"},
		},
		{
			name:       "bad email",
			input:      registerForm{Email: "not-an-email", Password: "longenough"},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			input:      registerForm{Email: "bob@x.com", Password: "short"},
			wantErr:    true,
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok)
			for _, field := range tt.wantFields {
				assert.Contains(t, validationErr.Errors, field)
			}
		})
	}
}

func TestValidator_ValidateVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateVar("bob@x.com", "required,email"))
	assert.Error(t, v.ValidateVar("", "required,email"))
	assert.Error(t, v.ValidateVar("nope", "required,email"))
}

func TestValidationError_Error(t *testing.T) {
	v := New()

	err := v.Validate(registerForm{Email: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid email", "bob@x.com", true},
		{"valid with subdomain", "a@mail.example.org", true},
		{"missing at", "bobx.com", false},
		{"missing domain", "bob@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid uuid4", "7f9c24e5-2f0b-4a3c-9c3d-1a2b3c4d5e6f", true},
		{"not a uuid", "abc-123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidUUID(tt.input))
		})
	}
}
