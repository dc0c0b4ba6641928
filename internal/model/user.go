// File: internal/model/user.go
package model

type User struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	// bcrypt hash, never the plain password
	PasswordHash string `db:"password" json:"-"`
}
