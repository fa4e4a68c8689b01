package user

// User is the authenticated session user. Held as opaque display state.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
