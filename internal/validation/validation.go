// Package validation concentra as regras de contrato dos registros recebidos das fontes
// de dados e dos parâmetros de consulta da API.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vfg2006/revenue-command-center/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator retorna a instância compartilhada com as validações do domínio registradas
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		mustRegister(validate, "industry", func(fl validator.FieldLevel) bool {
			return domain.IsKnownIndustry(fl.Field().String())
		})
		mustRegister(validate, "industry_filter", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == domain.IndustryAll || domain.IsKnownIndustry(value)
		})
		mustRegister(validate, "cohort", func(fl validator.FieldLevel) bool {
			return domain.IsKnownCohort(fl.Field().String())
		})
		mustRegister(validate, "finite", func(fl validator.FieldLevel) bool {
			value := fl.Field().Float()
			return !math.IsNaN(value) && !math.IsInf(value, 0)
		})
		mustRegister(validate, "llm_provider", providerValidation(domain.ProviderLLM))
		mustRegister(validate, "tts_provider", providerValidation(domain.ProviderTTS))
		mustRegister(validate, "telephony_provider", providerValidation(domain.ProviderTelephony))
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: falha ao registrar %s: %v", tag, err))
	}
}

func providerValidation(kind domain.ProviderKind) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := domain.ProviderRate(kind, fl.Field().String())
		return ok
	}
}

// ValidateRecord verifica o contrato de um registro, incluindo a stack quando presente
func ValidateRecord(record domain.CustomerRecord) error {
	v := Validator()

	var errs []error
	if err := v.Struct(record); err != nil {
		errs = append(errs, err)
	}

	if stack, ok := record.Stack.Get(); ok {
		if err := v.Struct(stack); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ValidateListQuery verifica coorte, filtro de vertical e a flag de ordenação da lista
func ValidateListQuery(query domain.ListQuery) error {
	return Validator().Struct(query)
}

// Describe converte os erros do validator em mensagens legíveis, uma por campo
func Describe(err error) []string {
	if err == nil {
		return nil
	}

	var messages []string
	for _, e := range unwrapAll(err) {
		var fieldErrors validator.ValidationErrors
		if errors.As(e, &fieldErrors) {
			for _, fe := range fieldErrors {
				messages = append(messages, describeField(fe))
			}
			continue
		}
		messages = append(messages, e.Error())
	}
	return messages
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: obrigatório", field)
	case "oneof":
		return fmt.Sprintf("%s: valor %q fora de [%s]", field, fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: deve ser maior ou igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s: deve ser maior que %s", field, fe.Param())
	case "finite":
		return fmt.Sprintf("%s: valor não finito", field)
	default:
		return fmt.Sprintf("%s: valor %q inválido (%s)", field, fe.Value(), fe.Tag())
	}
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
