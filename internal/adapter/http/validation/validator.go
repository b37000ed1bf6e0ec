package validation

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"todofront/internal/core/domain"
	"todofront/internal/core/port"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required.", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})
}

type TodoValidator struct{}

func NewTodoValidator() port.Validator {
	return &TodoValidator{}
}

// Validate never fails on DueDate: text that does not parse simply drops the date.
func (v *TodoValidator) Validate(raw domain.RawInput) (domain.TodoInput, domain.FieldErrors) {
	input := domain.TodoInput{
		Title:       stringField(raw, "Title"),
		Category:    stringField(raw, "Category"),
		Description: optionalString(raw, "Description"),
		DueDate:     domain.CoerceDate(raw["DueDate"]),
	}

	fieldErrors := domain.FieldErrors{}

	if err := Validator.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors

		if errors.As(err, &validationErrors) {
			for _, fieldError := range validationErrors {
				fieldErrors.Add(fieldError.Field(), fieldError.Translate(Translator))
			}
		}
	}

	return input, fieldErrors
}

func stringField(raw domain.RawInput, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}

	return ""
}

func optionalString(raw domain.RawInput, key string) *string {
	switch v := raw[key].(type) {
	case string:
		return &v
	case []string:
		if len(v) > 0 {
			s := v[0]
			return &s
		}
	}

	return nil
}
