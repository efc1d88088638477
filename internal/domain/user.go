package domain

import "net/mail"

// User represents a registered account of the marketplace.
//
// An account is created through exactly one of two paths: local sign-up,
// which sets HashedPassword, or Google OAuth provisioning, which sets
// GoogleID. Either field may be empty but never both. The ID is a surrogate
// key assigned by the store on creation and immutable thereafter.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Never expose the password hash in JSON
	GoogleID       string `json:"-"`
}

// NewLocalUser creates a user for the local sign-up path. The caller is
// responsible for hashing the password before constructing the user; this
// function never sees a plaintext password.
func NewLocalUser(email, hashedPassword string) (*User, error) {
	user := &User{
		Email:          email,
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewGoogleUser creates a user for the OAuth provisioning path, keyed on the
// provider's subject identifier. Such accounts have no local password until
// one is explicitly set (no such path exists today).
func NewGoogleUser(email, googleID string) (*User, error) {
	user := &User{
		Email:    email,
		GoogleID: googleID,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user carries a well-formed email and at least one
// credential (password hash or Google identity).
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if u.HashedPassword == "" && u.GoogleID == "" {
		return ErrMissingCredential
	}

	return nil
}

// HasPassword reports whether the account can authenticate with a local
// password. OAuth-only accounts return false.
func (u *User) HasPassword() bool {
	return u.HashedPassword != ""
}
