package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// ValidationError is a key-to-message map returned when validation fails.
//
// Keys are configuration keys, e.g. "token.period".
type ValidationError map[string]string

// Error implements the error interface.
func (vs ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Validator validates configuration structs using go-playground/validator v10.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator constructs a Validator with English translations and the
// hmacalg rule.
func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their mapstructure key
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerCustomValidation(validate, enTrans); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a ValidationError on failure.
func (v *Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errs := make(ValidationError)
		for _, fe := range validateErrs {
			errs[configKey(fe.Namespace())] = fe.Translate(v.translator)
		}
		return errs
	}

	return nil
}

// configKey drops the root struct name from a namespace such as
// "Config.token.period".
func configKey(namespace string) string {
	if _, key, ok := strings.Cut(namespace, "."); ok {
		return key
	}
	return namespace
}

func registerCustomValidation(validate *validator.Validate, enTrans ut.Translator) error {
	err := validate.RegisterValidation("hmacalg", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := hmacalg.Parse(s)
		return err == nil
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("hmacalg", enTrans,
		func(ut ut.Translator) error {
			return ut.Add("hmacalg", "{0} must name a supported HMAC algorithm", false)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
}
