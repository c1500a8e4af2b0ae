// Package validation concentra as regras de entrada do Space e do Item.
// É chamado pelos serviços antes de qualquer acesso à persistência.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"easyinventory/internal/domain"
	apperror "easyinventory/internal/errors"
)

var validate = newValidator()

func newValidator() *validatorv10.Validate {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	// Reporta os campos com o nome JSON ("minStock"), não o nome Go ("MinStock").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateSpace valida um Space já normalizado.
func ValidateSpace(space domain.Space) error {
	return validateStruct(space)
}

// ValidateItem valida um Item já normalizado.
func ValidateItem(item domain.Item) error {
	return validateStruct(item)
}

// ValidateQuantityUpdate valida o payload da atualização parcial de quantidade.
func ValidateQuantityUpdate(update domain.QuantityUpdate) error {
	return validateStruct(update)
}

// ValidateID garante que o identificador é um UUID válido.
func ValidateID(id, resource string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewFieldValidationError(
			fmt.Sprintf("O ID do %s deve ser um UUID válido.", resource),
			[]domain.FieldError{{Field: "id", Tag: "uuid"}},
		)
	}
	return nil
}

func validateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validatorv10.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return apperror.NewInternalError("Falha ao executar validação.", err)
	}

	fields := make([]domain.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, domain.FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return apperror.NewFieldValidationError(describe(fields[0]), fields)
}

// describe gera a mensagem legível para o primeiro campo inválido.
func describe(fe domain.FieldError) string {
	switch fe.Tag {
	case "required":
		return fmt.Sprintf("o campo %s é obrigatório.", fe.Field)
	case "min", "gte":
		return fmt.Sprintf("o campo %s não pode ser menor que %s.", fe.Field, fe.Param)
	case "max", "lte":
		return fmt.Sprintf("o campo %s não pode ser maior que %s.", fe.Field, fe.Param)
	case "oneof":
		return fmt.Sprintf("o campo %s deve ser um de: %s.", fe.Field, fe.Param)
	case "uuid":
		return fmt.Sprintf("o campo %s deve ser um UUID válido.", fe.Field)
	default:
		return fmt.Sprintf("o campo %s falhou na regra '%s'.", fe.Field, fe.Tag)
	}
}
