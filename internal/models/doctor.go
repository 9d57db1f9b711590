package models

// Doctor is a registered user of the clinic. Stored in the medecins table.
type Doctor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never rendered
}
