package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/apperror"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "x+y@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "@b.com", "a b@c.com", "a@b .com", "a@@b.com"}

	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"strong", "Abc12!", true},
		{"underscore counts as symbol", "Abc12_", true},
		{"too short", "Ab1!", false},
		{"no digit", "Abcdef!", false},
		{"no symbol", "Abcdef1", false},
		{"no upper", "abcdef1!", false},
		{"no lower", "ABCDEF1!", false},
		{"line break", "Abc12!\nx", false},
		{"non ascii letters are symbols only", "ÄBc12x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,strongpassword"`
}

func TestStructMissingFieldWins(t *testing.T) {
	err := Struct(&signup{Email: "not-an-email", Password: "Abc12!"})
	require.Error(t, err)

	typed := apperror.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperror.CodeMissingField, typed.Code())
	assert.Contains(t, typed.Details(), "name")
	assert.NotContains(t, typed.Details(), "email")
}

func TestStructInvalidFormat(t *testing.T) {
	err := Struct(&signup{Name: "Ann", Email: "ann@example.com", Password: "weakpass"})
	require.Error(t, err)

	typed := apperror.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperror.CodeInvalidFormat, typed.Code())
	assert.Contains(t, typed.Message(), "password")
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(&signup{Name: "Ann", Email: "ann@example.com", Password: "Str0ng!"}))
}
