package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	CreateOrganizer(ctx context.Context, organizer domain.Organizer) (domain.Organizer, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) SignupCustomer(ctx context.Context, customer domain.Customer) (domain.User, error) {
	hashed, err := hashPassword(customer.User.Password)
	if err != nil {
		return domain.User{}, err
	}
	customer.User.Password = hashed
	customer.User.Role = domain.RoleCustomer

	created, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.CreateCustomer -> %w", err)
	}

	return created.User, nil
}

func (s *AuthService) SignupOrganizer(ctx context.Context, organizer domain.Organizer) (domain.User, error) {
	hashed, err := hashPassword(organizer.User.Password)
	if err != nil {
		return domain.User{}, err
	}
	organizer.User.Password = hashed
	organizer.User.Role = domain.RoleOrganizer

	created, err := s.repo.CreateOrganizer(ctx, organizer)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.CreateOrganizer -> %w", err)
	}

	return created.User, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
