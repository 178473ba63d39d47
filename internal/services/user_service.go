package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
	"github.com/rafabene/usermanager/internal/domain/repositories"
	"github.com/rafabene/usermanager/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	notifier ports.Notifier
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	notifier ports.Notifier,
	logger ports.Logger,
) *UserService {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Role      string // vazio = DefaultRole
	Address   entities.Address
	AvatarURL *string
}

// CreateUser cria um novo usuário
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	s.logger.Info("creating user", "email", input.Email)

	user, err := newUserFromInput(input)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		// Validar se email já existe
		existing, err := s.userRepo.FindByEmail(txCtx, user.Email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return domainerrors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		s.logger.Warn("user creation failed", "email", input.Email, "error", err)
		return nil, err
	}

	s.logger.Info("User created", "user_id", user.ID)
	s.notify(ports.NotificationSuccess, "User created", user.Name+" was added")
	return user, nil
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// ListAll retorna todos os usuários vivos em ordem de criação
func (s *UserService) ListAll(ctx context.Context) ([]*entities.User, error) {
	return s.userRepo.List(ctx, repositories.UserFilters{})
}

// CountUsers retorna o total de usuários vivos
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// UpdateUser aplica o patch e retorna o registro resultante
func (s *UserService) UpdateUser(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.NewValidationError("no fields to update")
	}

	var updated *entities.User
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domainerrors.ErrUserNotFound
		}

		if err := user.Apply(patch); err != nil {
			return fieldError("email", err)
		}
		if err := user.Validate(); err != nil {
			return err
		}

		if patch.Email != nil {
			existing, err := s.userRepo.FindByEmail(txCtx, user.Email.String())
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return domainerrors.ErrEmailAlreadyExists
			}
		}

		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		s.logger.Warn("user update failed", "user_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("User updated", "user_id", id)
	s.notify(ports.NotificationSuccess, "User updated", updated.Name+" was updated")
	return updated, nil
}

// DeleteUser remove (soft delete) um usuário
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Warn("user deletion failed", "user_id", id, "error", err)
		return err
	}

	s.logger.Info("User deleted", "user_id", id)
	s.notify(ports.NotificationInfo, "User deleted", "user "+id+" was removed")
	return nil
}

func (s *UserService) notify(level ports.NotificationLevel, title, msg string) {
	s.notifier.Notify(ports.Notification{Level: level, Title: title, Message: msg})
}

func newUserFromInput(input CreateUserInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, fieldError("email", err)
	}

	role := entities.DefaultRole
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := entities.ParseRole(input.Role)
		if !ok {
			return nil, fieldError("role", domainerrors.ErrInvalidRole)
		}
		role = parsed
	}

	user := &entities.User{
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Company: strings.TrimSpace(input.Company),
		Role:    role,
	}
	user.Address.SetStreet(input.Address.Street)
	user.Address.SetCity(input.Address.City)
	user.Address.SetZipcode(input.Address.Zipcode)
	user.Address.Geo.SetLat(input.Address.Geo.Lat)
	user.Address.Geo.SetLng(input.Address.Geo.Lng)
	if input.AvatarURL != nil {
		if avatar := strings.TrimSpace(*input.AvatarURL); avatar != "" {
			user.AvatarURL = &avatar
		}
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// fieldError converte erros sentinela de value objects em erro de validação com campo
func fieldError(field string, err error) error {
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domainerrors.NewValidationError(err.Error(), domainerrors.FieldError{Field: field, Message: err.Error()})
}
