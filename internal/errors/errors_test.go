package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"easyinventory/internal/domain"
	apperror "easyinventory/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory string
		wantMessage  string
	}{
		{"validation", apperror.NewValidationError("nome vazio"), http.StatusBadRequest, "VALIDATION_ERROR", "Erro de Validação: nome vazio"},
		{"not found", apperror.NewNotFoundError("espaço x"), http.StatusNotFound, "NOT_FOUND", "Recurso não encontrado: espaço x"},
		{"db error", apperror.NewDBError("Falha ao buscar", stderrors.New("connection refused")), http.StatusInternalServerError, "INTERNAL_ERROR", "Erro Interno: Falha ao buscar (DB): connection refused"},
		{"wrapped not found", fmt.Errorf("camada: %w", apperror.NewNotFoundError("item")), http.StatusNotFound, "NOT_FOUND", "Recurso não encontrado: item"},
		{"untyped", stderrors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestToResponse_IncludesFields(t *testing.T) {
	fields := []domain.FieldError{{Field: "location", Tag: "required"}}
	resp := apperror.ToResponse(apperror.NewFieldValidationError("campos inválidos", fields))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, fields, resp.Fields)

	resp = apperror.ToResponse(apperror.NewNotFoundError("x"))
	assert.Empty(t, resp.Fields)
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, apperror.IsNotFound(fmt.Errorf("w: %w", apperror.NewNotFoundError("x"))))
	assert.False(t, apperror.IsNotFound(apperror.NewValidationError("x")))
	assert.True(t, apperror.IsValidation(apperror.NewValidationError("x")))

	cause := stderrors.New("driver")
	assert.ErrorIs(t, apperror.NewDBError("falha", cause), cause)
}
