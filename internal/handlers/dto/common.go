package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return ErrorResponse{
		Problem: &problems.Problem{
			Type:     baseURL + problemType,
			Title:    T(c, titleKey, params...),
			Status:   status,
			Detail:   T(c, detailKey, params...),
			Instance: c.Request.URL.Path,
		},
	}
}

// Abort escreve o problem document e interrompe a cadeia de handlers
func Abort(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// AbortWithError traduz um erro de domínio para o problem document adequado
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	Abort(c, ErrorResponseFor(c, err))
}

// ErrorResponseFor mapeia erros de domínio para status HTTP:
// validação 400, inexistente 404, email duplicado 409, demais 500.
func ErrorResponseFor(c *gin.Context, err error) ErrorResponse {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return ValidationErrorResponseI18n(c, TranslateValidationErrors(c, verrs))
	case errors.Is(err, domainerrors.ErrEmailAlreadyExists):
		response := ConflictErrorResponseI18n(c, domainerrors.ErrEmailAlreadyExists.Error())
		response.Errors = []ValidationError{{
			Field:   "email",
			Message: T(c, domainerrors.ErrEmailAlreadyExists.Error()),
			Tag:     "unique",
		}}
		return response
	case domainerrors.IsNotFound(err):
		return NotFoundErrorResponseI18n(c, "User")
	case domainerrors.IsValidation(err):
		return ValidationErrorResponseI18n(c, fieldErrors(c, err))
	default:
		return InternalErrorResponseI18n(c)
	}
}

// fieldErrors converte os FieldError do domínio em ValidationError
func fieldErrors(c *gin.Context, err error) []ValidationError {
	fields := domainerrors.FieldsOf(err)
	out := make([]ValidationError, 0, len(fields))
	for _, f := range fields {
		out = append(out, ValidationError{Field: f.Field, Message: f.Message})
	}
	if len(out) == 0 {
		for _, sentinel := range []struct {
			err   error
			field string
		}{
			{domainerrors.ErrInvalidEmail, "email"},
			{domainerrors.ErrInvalidPhone, "phone"},
			{domainerrors.ErrInvalidRole, "role"},
		} {
			if errors.Is(err, sentinel.err) {
				out = append(out, ValidationError{Field: sentinel.field, Message: T(c, sentinel.err.Error())})
			}
		}
	}
	return out
}

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		http.StatusBadRequest,
	)
	response.Errors = validationErrors
	return response
}

// BadRequestErrorResponseI18n cria uma resposta 400 para parâmetros ou corpo ilegíveis
func BadRequestErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeBadRequest,
		"error.bad_request.title",
		detailKey,
		http.StatusBadRequest,
	)
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, resource string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.not_found.detail",
		http.StatusNotFound,
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeConflict,
		"error.conflict.title",
		detailKey,
		http.StatusConflict,
		params...,
	)
}

// RateLimitedErrorResponseI18n cria uma resposta de erro 429
func RateLimitedErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeRateLimit,
		"error.rate_limited.title",
		"error.rate_limited.detail",
		http.StatusTooManyRequests,
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		domainerrors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		http.StatusInternalServerError,
	)
}
