package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role string `gorm:"not null"` // "customer" or "organizer"
	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Customer struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Organizer struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	OrganizationName string `gorm:"not null"`
	BusinessAddress  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// InsertCustomer creates the user row and its customer profile in one
// transaction.
func (d *UserDAO) InsertCustomer(ctx context.Context, user User) (Customer, error) {
	var customer Customer

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrUserEmailExists
			}

			return result.Error
		}

		customer = Customer{UserID: user.ID}
		if result := tx.Create(&customer); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return Customer{}, err
	}

	customer.User = user

	return customer, nil
}

// InsertOrganizer creates the user row and its organizer profile in one
// transaction.
func (d *UserDAO) InsertOrganizer(ctx context.Context, user User, organizer Organizer) (Organizer, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrUserEmailExists
			}

			return result.Error
		}

		organizer.UserID = user.ID
		if result := tx.Create(&organizer); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return Organizer{}, err
	}

	organizer.User = user

	return organizer, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// UpdateUser applies a partial profile update. Empty fields keep their
// current value. A taken email maps to ErrUserEmailExists via the unique
// index, same as signup.
func (d *UserDAO) UpdateUser(ctx context.Context, id uint, name, email string) (User, error) {
	var user User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.First(&user, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return result.Error
		}

		updates := map[string]any{}
		if name != "" {
			updates["name"] = name
		}
		if email != "" {
			updates["email"] = email
		}

		if result := tx.Model(&user).Updates(updates); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrUserEmailExists
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindCustomerByUserID(ctx context.Context, userID uint) (Customer, error) {
	var customer Customer

	result := d.db.WithContext(ctx).Preload("User").First(&customer, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Customer{}, ErrUserNotFound
		}

		return Customer{}, result.Error
	}

	return customer, nil
}

func (d *UserDAO) FindOrganizerByUserID(ctx context.Context, userID uint) (Organizer, error) {
	var organizer Organizer

	result := d.db.WithContext(ctx).Preload("User").First(&organizer, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organizer{}, ErrUserNotFound
		}

		return Organizer{}, result.Error
	}

	return organizer, nil
}
