package valueobjects

import (
	"regexp"
	"strings"

	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
)

var (
	ErrInvalidPhone = domainerrors.ErrInvalidPhone

	phonePattern  = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// ValidatePhone aceita números no formato E.164 tolerando espaços, hífens
// e parênteses: "+1 (555) 010-2030" é válido, "0800" não.
func ValidatePhone(phone string) error {
	digits := phoneStripper.Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(digits) {
		return ErrInvalidPhone
	}
	return nil
}
