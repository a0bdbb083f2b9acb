package models

// User is the public part of a registered account. It is what the session
// pointer holds and what the API returns.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoredUser is an entry of the global users list. Password holds either a
// bcrypt hash or, for accounts carried over from the browser store, the
// plaintext value.
type StoredUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Public strips the credential.
func (u StoredUser) Public() User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}
