package dto

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/usermanager/internal/domain/valueobjects"
)

var registerOnce sync.Once

// RegisterValidators instala no validator do gin a regra "phone" e o uso
// dos nomes JSON nos erros de campo. Pode ser chamada mais de uma vez.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("phone", validatePhone)
	})
}

func validatePhone(fl validator.FieldLevel) bool {
	return valueobjects.ValidatePhone(fl.Field().String()) == nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// TranslateValidationErrors converte erros do validator em mensagens traduzidas
func TranslateValidationErrors(c *gin.Context, errs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		field := fieldPath(fe)
		key := "validation." + fe.Tag()
		params := map[string]interface{}{"Field": field, "Param": fe.Param()}

		msg := T(c, key, params)
		if msg == key {
			msg = T(c, "validation.invalid", params)
		}

		out = append(out, ValidationError{
			Field:   field,
			Message: msg,
			Tag:     fe.Tag(),
		})
	}
	return out
}

// fieldPath remove o nome da struct raiz: "CreateUserRequest.address.city" -> "address.city"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
