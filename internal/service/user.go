package service

import (
	"context"
	"fmt"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindCustomerByUserID(ctx context.Context, userID uint) (domain.Customer, error)
	FindOrganizerByUserID(ctx context.Context, userID uint) (domain.Organizer, error)
	UpdateUser(ctx context.Context, id uint, name, email string) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial update to the caller's own user record.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, name, email string) (domain.User, error) {
	user, err := s.repo.UpdateUser(ctx, userID, name, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateUser -> %w", err)
	}

	return user, nil
}

// ResolvePrincipal maps an authenticated user ID to its role-tagged
// principal. The role is resolved exactly once here; everything downstream
// dispatches on the tag instead of probing for profiles.
func (s *UserService) ResolvePrincipal(ctx context.Context, userID uint) (domain.Principal, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	principal := domain.Principal{
		UserID: user.ID,
		Role:   user.Role,
	}

	switch user.Role {
	case domain.RoleCustomer:
		customer, err := s.repo.FindCustomerByUserID(ctx, user.ID)
		if err != nil {
			return domain.Principal{}, fmt.Errorf("s.repo.FindCustomerByUserID -> %w", err)
		}
		principal.CustomerID = customer.CustomerID

	case domain.RoleOrganizer:
		organizer, err := s.repo.FindOrganizerByUserID(ctx, user.ID)
		if err != nil {
			return domain.Principal{}, fmt.Errorf("s.repo.FindOrganizerByUserID -> %w", err)
		}
		principal.OrganizerID = organizer.OrganizerID
	}

	return principal, nil
}
