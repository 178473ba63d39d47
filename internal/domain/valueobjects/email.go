package valueobjects

import (
	"regexp"
	"strings"

	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
)

var (
	ErrInvalidEmail = domainerrors.ErrInvalidEmail

	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

// Email é um value object que garante que emails sejam sempre válidos
// e normalizados (sem espaços, minúsculos)
type Email struct {
	value string
}

// NewEmail cria um novo Email validado
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !isValidEmail(email) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: email}, nil
}

// MustEmail é como NewEmail mas entra em pânico com entrada inválida.
// Uso restrito a testes e valores constantes.
func MustEmail(email string) Email {
	e, err := NewEmail(email)
	if err != nil {
		panic(err)
	}
	return e
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// IsZero indica se o email não foi preenchido
func (e Email) IsZero() bool {
	return e.value == ""
}

// Equal compara dois emails normalizados
func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

func isValidEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return emailPattern.MatchString(email)
}
