package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Username string `validate:"required,min=3,max=50,username"`
	Password string `validate:"required,min=8,password"`
	Phone    string `validate:"omitempty,phone"`
}

func TestValidateRegisterPayload(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerPayload{
		Username: "ali_khan",
		Password: "Secret123",
		Phone:    "+923001234567",
	})
	assert.NoError(t, err)
}

func TestValidateRejectsBadFields(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerPayload{
		Username: "1badname", // must start with a letter
		Password: "lowercaseonly1",
		Phone:    "not-a-phone",
	})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "Username")
	assert.Contains(t, ve.Errors, "Password")
	assert.Contains(t, ve.Errors, "Phone")
}

type yearPayload struct {
	Year int `validate:"omitempty,listingyear"`
}

func TestValidateListingYear(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&yearPayload{Year: 2018}))
	assert.NoError(t, v.Validate(&yearPayload{})) // omitted

	assert.Error(t, v.Validate(&yearPayload{Year: 1969}))
	assert.Error(t, v.Validate(&yearPayload{Year: time.Now().Year() + 2}))
}
