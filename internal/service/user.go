// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradyhq/dealdesk/internal/auth"
	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	repo           repository.UserRepositoryIface
	partnerRepo    repository.PartnerRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewUserService(
	repo repository.UserRepositoryIface,
	partnerRepo repository.PartnerRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		repo:           repo,
		partnerRepo:    partnerRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       validator.New(),
	}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Authenticate verifies user credentials and returns a token
func (s *UserService) Authenticate(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(input.Password, user.PasswordHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

type CreateUserInput struct {
	Username              string     `json:"username" validate:"required"`
	Email                 string     `json:"email" validate:"omitempty,email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Password              string     `json:"password" validate:"required,min=8"`
	Role                  model.Role `json:"role" validate:"required,oneof=PARTNER BRADY ADMIN"`
	PartnerOrganisationID *uuid.UUID `json:"partner_organisation_id"`
}

// CreateUser registers an account. Partner users must belong to an existing
// partner organisation; the staff flag for admins is kept in sync by the
// model's persist hook.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if input.Role == model.RolePartner {
		if input.PartnerOrganisationID == nil {
			return nil, domain.ErrPartnerRequired
		}
		if _, err := s.partnerRepo.FindByID(ctx, *input.PartnerOrganisationID); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hashed, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:              input.Username,
		Email:                 input.Email,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		PasswordHash:          hashed,
		Role:                  input.Role,
		PartnerOrganisationID: input.PartnerOrganisationID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// GetUser resolves a user by ID, used by the auth middleware to attach the
// full actor to the request context.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}
