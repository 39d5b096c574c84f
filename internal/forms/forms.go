// Package forms validates the login and register inputs before anything
// touches the network. Messages mirror the UI copy the backend's users
// already know.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/00Flaptzy/academicflow/internal/errs"
)

var validate = validator.New()

// LoginForm is the credential pair entered on the login view.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Remember bool
}

// RegisterForm is the sign-up input set.
type RegisterForm struct {
	Nombre          string `validate:"required"`
	Apellidos       string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// messages maps struct field + failed tag onto the user-facing copy.
var messages = map[string]map[string]string{
	"Nombre": {
		"required": "Por favor, ingresa tu nombre",
	},
	"Apellidos": {
		"required": "Por favor, ingresa tus apellidos",
	},
	"Email": {
		"required": "Por favor, ingresa tu correo electrónico",
		"email":    "Por favor, ingresa un correo electrónico válido",
	},
	"Password": {
		"required": "Por favor, ingresa tu contraseña",
		"min":      "La contraseña debe tener al menos 6 caracteres",
	},
	"ConfirmPassword": {
		"required": "Por favor, confirma tu contraseña",
		"eqfield":  "Las contraseñas no coinciden",
	},
}

// Validate checks the login form. The first violation wins, matching the
// one-message-at-a-time behavior of the form views.
func (f *LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	f.Password = strings.TrimSpace(f.Password)
	return translate(validate.Struct(f))
}

// Validate checks the register form.
func (f *RegisterForm) Validate() error {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Apellidos = strings.TrimSpace(f.Apellidos)
	f.Email = strings.TrimSpace(f.Email)
	return translate(validate.Struct(f))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	first := verrs[0]
	if byTag, ok := messages[first.StructField()]; ok {
		if msg, ok := byTag[first.Tag()]; ok {
			return fmt.Errorf("%w: %s", errs.ErrValidation, msg)
		}
	}
	return fmt.Errorf("%w: campo '%s' inválido", errs.ErrValidation, first.StructField())
}
