package auth

import (
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/user"
)

// UserStore defines the persistence interface for login credentials and
// account holder profiles. Lookups return a second boolean result; an
// unknown username is an expected outcome, not a failure.
type UserStore interface {
	User(username string) (*user.User, bool)
	AddUser(u *user.User)
	SaveUsers() error

	UserDetails(username string) (*user.Details, bool)
	PutUserDetails(d *user.Details)
	SaveUserDetails() error
}
