package dto

import (
	"time"

	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/valueobjects"
	"github.com/rafabene/usermanager/internal/services"
)

// GeoPayload são as coordenadas de um endereço
type GeoPayload struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// AddressPayload é o endereço completo enviado na criação e devolvido nas respostas
type AddressPayload struct {
	Street  string     `json:"street" binding:"max=200"`
	City    string     `json:"city" binding:"max=100"`
	Zipcode string     `json:"zipcode" binding:"max=20"`
	Geo     GeoPayload `json:"geo"`
}

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Name    string          `json:"name" binding:"required,min=2,max=100"`
	Email   string          `json:"email" binding:"required,email"`
	Phone   string          `json:"phone" binding:"required,phone"`
	Company string          `json:"company" binding:"required,max=100"`
	Role    string          `json:"role,omitempty"`
	Address *AddressPayload `json:"address,omitempty"`
	Avatar  *string         `json:"avatar,omitempty" binding:"omitempty,url"`
}

// ToInput converte a requisição na entrada do serviço
func (r CreateUserRequest) ToInput() services.CreateUserInput {
	input := services.CreateUserInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Role:      r.Role,
		AvatarURL: r.Avatar,
	}
	if r.Address != nil {
		input.Address = entities.Address{
			Street:  r.Address.Street,
			City:    r.Address.City,
			Zipcode: r.Address.Zipcode,
			Geo:     entities.Geo{Lat: r.Address.Geo.Lat, Lng: r.Address.Geo.Lng},
		}
	}
	return input
}

// NewCreateUserRequest monta o corpo de criação a partir de um rascunho
func NewCreateUserRequest(d entities.UserDraft) CreateUserRequest {
	req := CreateUserRequest{
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Company: d.Company,
		Role:    string(d.Role),
		Avatar:  d.AvatarURL,
	}
	if d.Address != (entities.Address{}) {
		req.Address = &AddressPayload{
			Street:  d.Address.Street,
			City:    d.Address.City,
			Zipcode: d.Address.Zipcode,
			Geo:     GeoPayload{Lat: d.Address.Geo.Lat, Lng: d.Address.Geo.Lng},
		}
	}
	return req
}

// GeoPatch altera coordenadas; campos nil permanecem intocados
type GeoPatch struct {
	Lat *string `json:"lat,omitempty"`
	Lng *string `json:"lng,omitempty"`
}

// AddressPatch altera partes do endereço; campos nil permanecem intocados
type AddressPatch struct {
	Street  *string   `json:"street,omitempty" binding:"omitempty,max=200"`
	City    *string   `json:"city,omitempty" binding:"omitempty,max=100"`
	Zipcode *string   `json:"zipcode,omitempty" binding:"omitempty,max=20"`
	Geo     *GeoPatch `json:"geo,omitempty"`
}

// UpdateUserRequest representa a requisição para atualizar um usuário.
// Usada por PUT e PATCH: apenas os campos presentes são alterados.
type UpdateUserRequest struct {
	Name    *string       `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email   *string       `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string       `json:"phone,omitempty" binding:"omitempty,phone"`
	Company *string       `json:"company,omitempty" binding:"omitempty,min=1,max=100"`
	Role    *string       `json:"role,omitempty"`
	Address *AddressPatch `json:"address,omitempty"`
	Avatar  *string       `json:"avatar,omitempty"`
}

// ToPatch converte a requisição em um UserPatch do domínio
func (r UpdateUserRequest) ToPatch() (entities.UserPatch, error) {
	patch := entities.UserPatch{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		AvatarURL: r.Avatar,
	}

	if r.Role != nil {
		role, ok := entities.ParseRole(*r.Role)
		if !ok {
			return entities.UserPatch{}, domainerrors.NewValidationError(
				"invalid role",
				domainerrors.FieldError{Field: "role", Message: "role must be one of Admin, Manager, User"},
			)
		}
		patch.Role = &role
	}

	if a := r.Address; a != nil {
		patch.Street = a.Street
		patch.City = a.City
		patch.Zipcode = a.Zipcode
		if a.Geo != nil {
			patch.Lat = a.Geo.Lat
			patch.Lng = a.Geo.Lng
		}
	}

	return patch, nil
}

// NewUpdateUserRequest monta o corpo de atualização a partir de um patch
func NewUpdateUserRequest(p entities.UserPatch) UpdateUserRequest {
	req := UpdateUserRequest{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Company: p.Company,
		Avatar:  p.AvatarURL,
	}
	if p.Role != nil {
		role := p.Role.String()
		req.Role = &role
	}
	if p.Street != nil || p.City != nil || p.Zipcode != nil || p.Lat != nil || p.Lng != nil {
		req.Address = &AddressPatch{Street: p.Street, City: p.City, Zipcode: p.Zipcode}
		if p.Lat != nil || p.Lng != nil {
			req.Address.Geo = &GeoPatch{Lat: p.Lat, Lng: p.Lng}
		}
	}
	return req
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Company   string         `json:"company"`
	Role      string         `json:"role"`
	Address   AddressPayload `json:"address"`
	Avatar    *string        `json:"avatar,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email.String(),
		Phone:   user.Phone,
		Company: user.Company,
		Role:    string(user.Role),
		Address: AddressPayload{
			Street:  user.Address.Street,
			City:    user.Address.City,
			Zipcode: user.Address.Zipcode,
			Geo:     GeoPayload{Lat: user.Address.Geo.Lat, Lng: user.Address.Geo.Lng},
		},
		Avatar:    user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToEntity reconstrói a entidade a partir da resposta da API.
// Um role desconhecido é mantido como veio; o email precisa ser válido.
func (r UserResponse) ToEntity() (*entities.User, error) {
	email, err := valueobjects.NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	return &entities.User{
		ID:      r.ID,
		Name:    r.Name,
		Email:   email,
		Phone:   r.Phone,
		Company: r.Company,
		Role:    entities.Role(r.Role),
		Address: entities.Address{
			Street:  r.Address.Street,
			City:    r.Address.City,
			Zipcode: r.Address.Zipcode,
			Geo:     entities.Geo{Lat: r.Address.Geo.Lat, Lng: r.Address.Geo.Lng},
		},
		AvatarURL: r.Avatar,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
