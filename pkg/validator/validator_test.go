package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/pkg/validator"
)

type signupForm struct {
	Username string `form:"username" validate:"required,max=150,username"`
	Email    string `form:"email" validate:"omitempty,email"`
	Password string `form:"password1" validate:"required,min=8"`
	Confirm  string `form:"password2" validate:"required,eqfield=Password"`
	Text     string `form:"text" validate:"notblank"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		err := validator.ValidateStruct(signupForm{
			Username: "leo", Password: "secret123", Confirm: "secret123", Text: "hi",
		})
		require.NoError(t, err)
	})

	t.Run("errors keyed by form name", func(t *testing.T) {
		t.Parallel()

		err := validator.ValidateStruct(signupForm{
			Email: "nope", Password: "short", Confirm: "other", Text: "   ",
		})
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))
		require.ErrorIs(t, err, validator.ErrValidation)

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"This field is required."}, errs.Get("username"))
		assert.Equal(t, []string{"Enter a valid email address."}, errs.Get("email"))
		assert.Equal(t, []string{"Ensure this value has at least 8 characters."}, errs.Get("password1"))
		assert.Equal(t, []string{"The two password fields didn't match."}, errs.Get("password2"))
		assert.Equal(t, []string{"This field is required."}, errs.Get("text"))
		assert.False(t, errs.Has("Username"))

		rules := make(map[string]string, len(errs))
		for _, fe := range errs {
			rules[fe.Field] = fe.Rule
		}
		assert.Equal(t, "eqfield", rules["password2"])
		assert.Equal(t, "notblank", rules["text"])
	})

	t.Run("username characters", func(t *testing.T) {
		t.Parallel()

		base := signupForm{Password: "secret123", Confirm: "secret123", Text: "hi"}
		for _, name := range []string{"leo", "лев.толстой", "a+b@c-d_e"} {
			f := base
			f.Username = name
			require.NoError(t, validator.ValidateStruct(f), name)
		}

		f := base
		f.Username = "leo tolstoy"
		errs := validator.ExtractValidationErrors(validator.ValidateStruct(f))
		assert.Equal(t, []string{"Enter a valid username."}, errs.Get("username"))
	})

	t.Run("non struct is a plain error", func(t *testing.T) {
		t.Parallel()

		err := validator.ValidateStruct("text")
		require.Error(t, err)
		assert.False(t, validator.IsValidationError(err))
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	assert.True(t, errs.IsEmpty())

	errs = errs.Add("group", "Select a valid choice.").Add("", "Please enter a correct username and password.")
	assert.False(t, errs.IsEmpty())
	assert.True(t, errs.Has("group"))
	assert.Equal(t, []string{"Please enter a correct username and password."}, errs.NonField())
	assert.Equal(t, "group: Select a valid choice.; Please enter a correct username and password.", errs.Error())

	wrapped := fmt.Errorf("bind: %w", errs)
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Len(t, validator.ExtractValidationErrors(wrapped), 2)
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
}
