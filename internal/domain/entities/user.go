package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/valueobjects"
)

// Geo contém as coordenadas textuais de um endereço
type Geo struct {
	Lat string
	Lng string
}

// Address é o endereço opcional de um usuário
type Address struct {
	Street  string
	City    string
	Zipcode string
	Geo     Geo
}

// User representa um usuário do sistema
type User struct {
	ID        string
	Name      string
	Email     valueobjects.Email
	Phone     string
	Company   string
	Role      Role
	Address   Address
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft delete
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDeleted verifica se o usuário foi deletado (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// SoftDelete marca o usuário como deletado
func (u *User) SoftDelete() {
	now := time.Now()
	u.DeletedAt = &now
}

// Clone retorna uma cópia independente do usuário
func (u *User) Clone() *User {
	c := *u
	if u.AvatarURL != nil {
		avatar := *u.AvatarURL
		c.AvatarURL = &avatar
	}
	if u.DeletedAt != nil {
		deletedAt := *u.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}

// Validate valida regras de negócio da entidade User. Todas as falhas são
// reportadas de uma vez, uma por campo.
func (u *User) Validate() error {
	var fields []domainerrors.FieldError
	fail := func(field, msg string) {
		fields = append(fields, domainerrors.FieldError{Field: field, Message: msg})
	}

	switch name := strings.TrimSpace(u.Name); {
	case name == "":
		fail("name", "name is required")
	case utf8.RuneCountInString(name) < 2:
		fail("name", "name must be at least 2 characters")
	}

	if u.Email.IsZero() {
		fail("email", "email is required")
	}

	if strings.TrimSpace(u.Phone) == "" {
		fail("phone", "phone is required")
	} else if err := valueobjects.ValidatePhone(u.Phone); err != nil {
		fail("phone", "phone must be a valid international number")
	}

	if strings.TrimSpace(u.Company) == "" {
		fail("company", "company is required")
	}

	if !u.Role.IsValid() {
		fail("role", "role must be one of Admin, Manager, User")
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError("invalid user data", fields...)
	}
	return nil
}

// UserPatch descreve uma atualização parcial. Campos nil permanecem intocados.
type UserPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	Company   *string
	Role      *Role
	Street    *string
	City      *string
	Zipcode   *string
	Lat       *string
	Lng       *string
	AvatarURL *string
}

// IsEmpty indica se o patch não altera nenhum campo
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Company == nil &&
		p.Role == nil && p.Street == nil && p.City == nil && p.Zipcode == nil &&
		p.Lat == nil && p.Lng == nil && p.AvatarURL == nil
}

// Apply aplica o patch sobre o usuário. O email é normalizado; um email
// inválido aborta a operação sem modificar o usuário.
func (u *User) Apply(p UserPatch) error {
	var email valueobjects.Email
	if p.Email != nil {
		var err error
		email, err = valueobjects.NewEmail(*p.Email)
		if err != nil {
			return err
		}
	}

	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = email
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Company != nil {
		u.Company = strings.TrimSpace(*p.Company)
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Street != nil {
		u.Address.SetStreet(*p.Street)
	}
	if p.City != nil {
		u.Address.SetCity(*p.City)
	}
	if p.Zipcode != nil {
		u.Address.SetZipcode(*p.Zipcode)
	}
	if p.Lat != nil {
		u.Address.Geo.SetLat(*p.Lat)
	}
	if p.Lng != nil {
		u.Address.Geo.SetLng(*p.Lng)
	}
	if p.AvatarURL != nil {
		if avatar := strings.TrimSpace(*p.AvatarURL); avatar != "" {
			u.AvatarURL = &avatar
		} else {
			u.AvatarURL = nil
		}
	}
	return nil
}

func (a *Address) SetStreet(v string)  { a.Street = strings.TrimSpace(v) }
func (a *Address) SetCity(v string)    { a.City = strings.TrimSpace(v) }
func (a *Address) SetZipcode(v string) { a.Zipcode = strings.TrimSpace(v) }
func (g *Geo) SetLat(v string)         { g.Lat = strings.TrimSpace(v) }
func (g *Geo) SetLng(v string)         { g.Lng = strings.TrimSpace(v) }

// UserDraft contém os campos de um usuário ainda não persistido.
// ID e CreatedAt são atribuídos pelo store.
type UserDraft struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Role      Role // vazio = DefaultRole
	Address   Address
	AvatarURL *string
}
