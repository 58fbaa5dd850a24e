package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidHorasFormat   ErrorCode = "INVALID_HORAS_FORMAT"
	ErrCodeSaldoExcedido        ErrorCode = "SALDO_EMPENHO_EXCEDIDO"
	ErrCodeInvalidDate          ErrorCode = "INVALID_DATE"
	ErrCodeInvalidValor         ErrorCode = "INVALID_VALOR"
	ErrCodeInvalidJustificativa ErrorCode = "INVALID_JUSTIFICATIVA"

	ErrCodeEditalNotFound        ErrorCode = "EDITAL_NOT_FOUND"
	ErrCodeAtividadeNotFound     ErrorCode = "ATIVIDADE_NOT_FOUND"
	ErrCodeTipoAtividadeNotFound ErrorCode = "TIPO_ATIVIDADE_NOT_FOUND"
	ErrCodeLancamentoNotFound    ErrorCode = "LANCAMENTO_NOT_FOUND"
	ErrCodeServidorNotFound      ErrorCode = "SERVIDOR_NOT_FOUND"

	ErrCodeAcessoNegado       ErrorCode = "ACESSO_NEGADO"
	ErrCodeTransicaoInvalida  ErrorCode = "TRANSICAO_STATUS_INVALIDA"
	ErrCodeServidorNaoAlocado ErrorCode = "SERVIDOR_NAO_ALOCADO"
	ErrCodeTipoAtividadeEmUso ErrorCode = "TIPO_ATIVIDADE_EM_USO"
	ErrCodeFuncaoDesconhecida ErrorCode = "FUNCAO_DESCONHECIDA"

	ErrCodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	ErrCodePerfilNaoHomologado ErrorCode = "PERFIL_NAO_HOMOLOGADO"
	ErrCodeInvalidToken        ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired        ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewSaldoExcedidoError reports a submission whose cost would push the edital
// past its committed budget. Both figures carry two decimal places so callers
// can surface them directly.
func NewSaldoExcedidoError(custo, saldo decimal.Decimal) *AppError {
	return NewValidationError(
		fmt.Sprintf("custo do lançamento (R$ %s) excede o saldo de empenho disponível (R$ %s)",
			custo.StringFixed(2), saldo.StringFixed(2)),
		ErrCodeSaldoExcedido,
	)
}

var (
	ErrEditalNotFound        = NewNotFoundError("edital não encontrado", ErrCodeEditalNotFound)
	ErrAtividadeNotFound     = NewNotFoundError("atividade não encontrada", ErrCodeAtividadeNotFound)
	ErrTipoAtividadeNotFound = NewNotFoundError("tipo de atividade não encontrado no catálogo", ErrCodeTipoAtividadeNotFound)
	ErrLancamentoNotFound    = NewNotFoundError("lançamento de horas não encontrado", ErrCodeLancamentoNotFound)
	ErrServidorNotFound      = NewNotFoundError("servidor não encontrado", ErrCodeServidorNotFound)

	ErrAcessoNegado       = NewForbiddenError("acesso negado para esta operação", ErrCodeAcessoNegado)
	ErrTransicaoInvalida  = NewConflictError("transição de status inválida para o estado atual", ErrCodeTransicaoInvalida)
	ErrServidorNaoAlocado = NewForbiddenError("servidor não alocado nesta atividade", ErrCodeServidorNaoAlocado)
	ErrTipoAtividadeEmUso = NewConflictError("tipo de atividade em uso por atividades existentes", ErrCodeTipoAtividadeEmUso)

	ErrInvalidCredentials  = NewUnauthorizedError("credenciais inválidas", ErrCodeInvalidCredentials)
	ErrPerfilNaoHomologado = NewForbiddenError("perfil do servidor ainda não homologado", ErrCodePerfilNaoHomologado)
	ErrInvalidToken        = NewUnauthorizedError("token inválido", ErrCodeInvalidToken)
	ErrTokenExpired        = NewUnauthorizedError("token expirado", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
