package user

// User represents a login credential for the application.
// Passwords are stored and compared as plain text, matching the legacy
// user files; no hashing scheme is layered on top.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// Details represents the profile an account holder completes after
// registering a credential (step two of registration).
type Details struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// FullName returns the display name for a profile.
func (d Details) FullName() string {
	return d.FirstName + " " + d.LastName
}
