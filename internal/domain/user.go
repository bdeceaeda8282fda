package domain

import (
	"errors"
	"time"
)

// Common validation errors for User
var (
	ErrEmptyUserName  = errors.New("user name cannot be empty")
	ErrEmptyUserEmail = errors.New("user email cannot be empty")
	ErrInvalidEmail   = errors.New("invalid email format")
)

// User represents a person tasks can be assigned to.
// The ID is assigned by the store on creation and never changes afterwards.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a new User with the given name and email.
// The ID and CreatedAt fields are left zero; the store assigns them on Create.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	user := &User{
		Name:  name,
		Email: email,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyUserEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// The boundary layer runs the full validator/v10 email check; this guard only
// rejects values that could never be an address.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
