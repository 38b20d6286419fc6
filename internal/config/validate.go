package config

import (
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	frtranslations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/pkg/errors"
)

// translator picks the first supported translator out of locale, fallback and "en".
func translator(locale, fallback string) ut.Translator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, fr.New())

	for _, l := range []string{locale, fallback} {
		if trans, found := uni.GetTranslator(strings.ToLower(l)); found {
			return trans
		}
	}

	trans, _ := uni.GetTranslator("en")

	return trans
}

func registerTranslations(v *validator.Validate, trans ut.Translator) error {
	if trans.Locale() == "fr" {
		return frtranslations.RegisterDefaultTranslations(v, trans) //nolint:wrapcheck
	}

	return entranslations.RegisterDefaultTranslations(v, trans) //nolint:wrapcheck
}

// validateStruct runs the struct tag rules and reports every failure in the
// configured locale.
func validateStruct(c *Config) error {
	v := validator.New()
	trans := translator(c.App.Locale, c.App.FallbackLocale)

	if err := registerTranslations(v, trans); err != nil {
		return errors.Wrap(err, "failed to register validation translations")
	}

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, ErrInvalidConfig.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Namespace()+": "+fe.Translate(trans))
	}

	return errors.Wrap(ErrInvalidConfig, strings.Join(messages, "; "))
}
