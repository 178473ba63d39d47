package entities

import "strings"

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// DefaultRole é o papel atribuído quando nenhum é informado
const DefaultRole = RoleUser

// Roles lista os papéis conhecidos na ordem exibida pela UI
var Roles = []Role{RoleAdmin, RoleManager, RoleUser}

// IsValid verifica se o role é um dos papéis conhecidos
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// String retorna o valor textual do role
func (r Role) String() string {
	return string(r)
}

// ParseRole converte texto livre em Role, ignorando caixa ("admin" -> Admin).
// Retorna false quando o valor não corresponde a nenhum papel conhecido.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Roles {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}
