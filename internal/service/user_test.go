package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evsys/event-scheduling-api/internal/domain"
)

type fakeUserRepo struct {
	findByID              func(id uint) (domain.User, error)
	findCustomerByUserID  func(userID uint) (domain.Customer, error)
	findOrganizerByUserID func(userID uint) (domain.Organizer, error)
	updateUser            func(id uint, name, email string) (domain.User, error)
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	return f.findByID(id)
}

func (f *fakeUserRepo) FindCustomerByUserID(_ context.Context, userID uint) (domain.Customer, error) {
	return f.findCustomerByUserID(userID)
}

func (f *fakeUserRepo) FindOrganizerByUserID(_ context.Context, userID uint) (domain.Organizer, error) {
	return f.findOrganizerByUserID(userID)
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id uint, name, email string) (domain.User, error) {
	return f.updateUser(id, name, email)
}

func TestUserService_UpdateProfile(t *testing.T) {
	var gotID uint
	var gotName, gotEmail string
	repo := &fakeUserRepo{
		updateUser: func(id uint, name, email string) (domain.User, error) {
			gotID, gotName, gotEmail = id, name, email
			return domain.User{ID: id, Name: name, Email: email}, nil
		},
	}

	svc := NewUserService(repo)

	user, err := svc.UpdateProfile(context.Background(), 7, "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 7, gotID)
	assert.Equal(t, "Alice", gotName)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	repo := &fakeUserRepo{
		updateUser: func(_ uint, _, _ string) (domain.User, error) {
			return domain.User{}, ErrUserEmailExists
		},
	}

	svc := NewUserService(repo)

	_, err := svc.UpdateProfile(context.Background(), 7, "", "taken@example.com")
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestUserService_ResolvePrincipal_Customer(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(id uint) (domain.User, error) {
			return domain.User{ID: id, Role: domain.RoleCustomer}, nil
		},
		findCustomerByUserID: func(userID uint) (domain.Customer, error) {
			return domain.Customer{User: domain.User{ID: userID}, CustomerID: 10}, nil
		},
	}

	svc := NewUserService(repo)

	principal, err := svc.ResolvePrincipal(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, principal.IsCustomer())
	assert.EqualValues(t, 10, principal.CustomerID)
	assert.Zero(t, principal.OrganizerID)
}

func TestUserService_ResolvePrincipal_Organizer(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(id uint) (domain.User, error) {
			return domain.User{ID: id, Role: domain.RoleOrganizer}, nil
		},
		findOrganizerByUserID: func(userID uint) (domain.Organizer, error) {
			return domain.Organizer{User: domain.User{ID: userID}, OrganizerID: 20}, nil
		},
	}

	svc := NewUserService(repo)

	principal, err := svc.ResolvePrincipal(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, principal.IsOrganizer())
	assert.EqualValues(t, 20, principal.OrganizerID)
	assert.Zero(t, principal.CustomerID)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ uint) (domain.User, error) {
			return domain.User{}, ErrUserNotFound
		},
	}

	svc := NewUserService(repo)

	_, err := svc.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
