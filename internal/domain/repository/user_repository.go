package repository

import "github.com/oksasatya/invoice-dashboard/internal/domain/entity"

// UserRepository is the credential store: users are created once at
// registration and read back by email during sign-in.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
