package auth

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/errors"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/user"
)

// PasswordPolicy is the guidance shown to users when a password is
// rejected: minimum 4 characters, at least one uppercase letter and at
// least one digit.
const PasswordPolicy = "password must be 4+ chars, have 1 uppercase, 1 digit"

// Session represents a successful login. Token is an opaque handle the
// shell keeps for the lifetime of its window; it carries no claims and
// grants nothing by itself. HasDetails tells the shell whether to force
// the profile details step before opening the main system.
type Session struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	HasDetails bool   `json:"hasDetails"`
}

// Service provides account holder authentication: credential
// registration, profile details, login and password reset. Credentials
// are stored and compared as plain text, matching the legacy user files.
type Service struct {
	store UserStore
	log   *zap.Logger
}

// NewService creates a new auth service
func NewService(store UserStore, log *zap.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Register creates a new login credential (step one of registration).
// The username must be unused and the password must satisfy the policy.
func (s *Service) Register(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return errors.NewInvalidInputError("all fields are required")
	}
	if password != confirm {
		return errors.NewInvalidInputError("passwords do not match")
	}
	if !validPassword(password) {
		return errors.NewInvalidInputError(PasswordPolicy)
	}
	if _, ok := s.store.User(username); ok {
		return errors.NewConflictError("username already exists")
	}

	s.store.AddUser(&user.User{Username: username, Password: password})
	if err := s.store.SaveUsers(); err != nil {
		s.log.Error("saving users failed", zap.String("username", username), zap.Error(err))
		return errors.NewPersistenceError("registration not saved to disk", err)
	}

	s.log.Info("user registered", zap.String("username", username))
	return nil
}

// SaveDetails stores the account holder profile (step two of
// registration), replacing any existing profile for the username. The
// first name must start with a capital letter.
func (s *Service) SaveDetails(username, firstName, lastName, phone, email, address string) error {
	d := &user.Details{
		Username:  strings.TrimSpace(username),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		Address:   strings.TrimSpace(address),
	}
	if d.Username == "" || d.FirstName == "" || d.LastName == "" || d.Phone == "" || d.Email == "" || d.Address == "" {
		return errors.NewInvalidInputError("all fields are required")
	}
	if !unicode.IsUpper([]rune(d.FirstName)[0]) {
		return errors.NewInvalidInputError("first name must start with a capital letter")
	}

	s.store.PutUserDetails(d)
	if err := s.store.SaveUserDetails(); err != nil {
		s.log.Error("saving user details failed", zap.String("username", d.Username), zap.Error(err))
		return errors.NewPersistenceError("profile details not saved to disk", err)
	}

	s.log.Info("user details saved", zap.String("username", d.Username))
	return nil
}

// Login checks a credential and opens a session. The caller must not
// reveal whether the username or the password was wrong.
func (s *Service) Login(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.NewInvalidInputError("username and password are required")
	}

	u, ok := s.store.User(username)
	if !ok || u.Password != password {
		return nil, errors.NewAuthenticationError("invalid username or password")
	}

	_, hasDetails := s.store.UserDetails(username)
	s.log.Info("login", zap.String("username", username), zap.Bool("hasDetails", hasDetails))
	return &Session{
		Token:      uuid.NewString(),
		Username:   username,
		HasDetails: hasDetails,
	}, nil
}

// ResetPassword replaces a credential's password after verifying the
// username against the email stored in the profile details.
func (s *Service) ResetPassword(username, email, newPassword, confirm string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || newPassword == "" || confirm == "" {
		return errors.NewInvalidInputError("all fields are required for password reset")
	}
	if newPassword != confirm {
		return errors.NewInvalidInputError("new passwords do not match")
	}
	if !validPassword(newPassword) {
		return errors.NewInvalidInputError(PasswordPolicy)
	}

	d, ok := s.store.UserDetails(username)
	if !ok || !strings.EqualFold(d.Email, email) {
		return errors.NewAuthenticationError("verification failed: username and email do not match our records")
	}
	u, ok := s.store.User(username)
	if !ok {
		return errors.NewNotFoundError("username not found in the user database")
	}

	u.Password = newPassword
	if err := s.store.SaveUsers(); err != nil {
		s.log.Error("saving users failed", zap.String("username", username), zap.Error(err))
		return errors.NewPersistenceError("password reset not saved to disk", err)
	}

	s.log.Info("password reset", zap.String("username", username))
	return nil
}

// validPassword checks the password policy: at least 4 characters, one
// uppercase letter and one digit. RE2 has no lookahead, so the policy is
// written as explicit checks instead of a single regexp.
func validPassword(p string) bool {
	runes := []rune(p)
	if len(runes) < 4 {
		return false
	}
	var upper, digit bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}
