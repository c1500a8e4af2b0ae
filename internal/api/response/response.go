// Package response concentra a escrita de respostas JSON dos handlers.
package response

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	apperror "easyinventory/internal/errors"
	"easyinventory/internal/pkg/logger"
)

// MaxBodyBytes é o tamanho máximo aceito para o corpo de uma requisição.
const MaxBodyBytes = 1 << 20

// JSON escreve data como corpo JSON com o status informado. O corpo é
// codificado antes do cabeçalho: se a codificação falhar, responde 500.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	var buf bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&buf).Encode(data); err != nil {
			log.Error("Falha ao codificar JSON de resposta", err)
			buf.Reset()
			status = http.StatusInternalServerError
			body := apperror.ToResponse(apperror.NewInternalError("Falha ao codificar a resposta.", err))
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("Falha ao escrever resposta", err)
	}
}

// Error traduz err para o corpo padronizado de erro e o status correspondente.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	body := apperror.ToResponse(err)

	if body.Code >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", body.Category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", body.Code, body.Category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, log, body.Code, body)
}

// Handle envia data com successStatus, ou o erro padronizado quando err != nil.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	JSON(w, log, successStatus, data)
}

// Decode lê o corpo JSON da requisição em dst, limitado a MaxBodyBytes e a
// um único valor JSON. Falhas de formato viram ValidationError (400).
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewValidationError("Payload inválido. Corpo da requisição vazio.")
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return apperror.NewValidationError(fmt.Sprintf("Payload inválido. O corpo excede %d bytes.", MaxBodyBytes))
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	if dec.More() {
		return apperror.NewValidationError("Payload inválido. Envie um único objeto JSON.")
	}
	return nil
}
