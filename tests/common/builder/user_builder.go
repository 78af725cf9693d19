//go:build unit || e2e

package builder

import (
	"airaa-jewels/internal/domain/user"
	"airaa-jewels/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         "customer",
		DisplayName:  "Test User",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, u.PasswordHash, role, u.DisplayName), nil
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          uuid.New(),
		Email:       u.Email,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
