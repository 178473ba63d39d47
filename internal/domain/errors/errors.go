package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções ficam em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
)

// Domain errors
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
	ErrInvalidPhone = errors.New("error.invalid_phone")
	ErrInvalidRole  = errors.New("error.invalid_role")
	ErrValidation   = errors.New("error.validation")
)

// Infrastructure errors
var (
	// ErrTransport indica que a chamada ao record store não completou
	ErrTransport = errors.New("error.transport")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation = "/problems/validation-error"
	ProblemTypeNotFound   = "/problems/not-found"
	ProblemTypeConflict   = "/problems/conflict"
	ProblemTypeInternal   = "/problems/internal-error"
	ProblemTypeBadRequest = "/problems/bad-request"
	ProblemTypeRateLimit  = "/problems/rate-limited"
)

// FieldError descreve a falha de validação de um campo
type FieldError struct {
	Field   string
	Message string
}

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError cria um erro de validação que casa com ErrValidation
func NewValidationError(message string, fields ...FieldError) *DomainError {
	return &DomainError{
		Type:    ProblemTypeValidation,
		Title:   "Validation failed",
		Message: message,
		Fields:  fields,
		Err:     ErrValidation,
	}
}

// NewTransportError envolve uma falha de comunicação com o record store
func NewTransportError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeInternal,
		Title:   "Transport failure",
		Message: message,
		Err:     errors.Join(ErrTransport, cause),
	}
}

// IsNotFound indica que o identificador não existe mais
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsValidation indica campo ausente, malformado ou duplicado
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidRole)
}

// IsTransport indica que a chamada não completou
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// FieldsOf extrai os erros de campo de um DomainError, se houver
func FieldsOf(err error) []FieldError {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}
