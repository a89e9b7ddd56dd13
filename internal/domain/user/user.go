package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
)

// User is a marketplace account: a tenant, a property owner, or an admin.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	firstName    string
	lastName     string
	role         auth.Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with validated fields. passwordHash must already be hashed.
func NewUser(email, passwordHash, firstName, lastName string, role auth.Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, domain.NewValidationError("first and last name are required")
	}
	if role == "" {
		role = auth.RoleTenant
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, email, passwordHash, firstName, lastName string, role auth.Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Role() auth.Role      { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// UpdateProfile replaces the names and email. Empty values keep the current ones.
func (u *User) UpdateProfile(firstName, lastName, email string) error {
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.NewValidationError("a valid email is required")
		}
		u.email = email
	}
	if s := strings.TrimSpace(firstName); s != "" {
		u.firstName = s
	}
	if s := strings.TrimSpace(lastName); s != "" {
		u.lastName = s
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// ChangeRole assigns a new role.
func (u *User) ChangeRole(role auth.Role) error {
	if !role.IsValid() {
		return domain.NewValidationError("invalid role: " + string(role))
	}
	u.role = role
	u.updatedAt = time.Now().UTC()
	return nil
}

// Roles returns the role set placed in access tokens.
func (u *User) Roles() []auth.Role {
	return []auth.Role{u.role}
}
