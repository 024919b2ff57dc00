package repository

import (
	"context"
	"fmt"

	"github.com/evsys/event-scheduling-api/internal/domain"
	"github.com/evsys/event-scheduling-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	InsertCustomer(ctx context.Context, user dao.User) (dao.Customer, error)
	InsertOrganizer(ctx context.Context, user dao.User, organizer dao.Organizer) (dao.Organizer, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdateUser(ctx context.Context, id uint, name, email string) (dao.User, error)
	FindCustomerByUserID(ctx context.Context, userID uint) (dao.Customer, error)
	FindOrganizerByUserID(ctx context.Context, userID uint) (dao.Organizer, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) userDomainToDao(u domain.User) dao.User {
	return dao.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	created, err := r.dao.InsertCustomer(ctx, r.userDomainToDao(customer.User))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("r.dao.InsertCustomer -> %w", err)
	}

	return domain.Customer{
		User:       r.userDaoToDomain(created.User),
		CustomerID: created.ID,
	}, nil
}

func (r *UserRepository) CreateOrganizer(ctx context.Context, organizer domain.Organizer) (domain.Organizer, error) {
	created, err := r.dao.InsertOrganizer(ctx, r.userDomainToDao(organizer.User), dao.Organizer{
		OrganizationName: organizer.OrganizationName,
		BusinessAddress:  organizer.BusinessAddress,
	})
	if err != nil {
		return domain.Organizer{}, fmt.Errorf("r.dao.InsertOrganizer -> %w", err)
	}

	return domain.Organizer{
		User:             r.userDaoToDomain(created.User),
		OrganizerID:      created.ID,
		OrganizationName: created.OrganizationName,
		BusinessAddress:  created.BusinessAddress,
	}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.userDaoToDomain(user), nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint, name, email string) (domain.User, error) {
	user, err := r.dao.UpdateUser(ctx, id, name, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateUser -> %w", err)
	}

	return r.userDaoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.userDaoToDomain(user), nil
}

func (r *UserRepository) FindCustomerByUserID(ctx context.Context, userID uint) (domain.Customer, error) {
	customer, err := r.dao.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("r.dao.FindCustomerByUserID -> %w", err)
	}

	return domain.Customer{
		User:       r.userDaoToDomain(customer.User),
		CustomerID: customer.ID,
	}, nil
}

func (r *UserRepository) FindOrganizerByUserID(ctx context.Context, userID uint) (domain.Organizer, error) {
	organizer, err := r.dao.FindOrganizerByUserID(ctx, userID)
	if err != nil {
		return domain.Organizer{}, fmt.Errorf("r.dao.FindOrganizerByUserID -> %w", err)
	}

	return domain.Organizer{
		User:             r.userDaoToDomain(organizer.User),
		OrganizerID:      organizer.ID,
		OrganizationName: organizer.OrganizationName,
		BusinessAddress:  organizer.BusinessAddress,
	}, nil
}
