package store

import (
	"context"

	"lightbnb/internal/database"
	"lightbnb/internal/model"

	"github.com/jackc/pgx/v5"
)

// GetUserWithEmail returns the user with exactly this email, or nil, nil
// when there is none.
func GetUserWithEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password
		 FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row, "GetUserWithEmail")
}

// GetUserWithID returns the user with this id, or nil, nil when there is none.
func GetUserWithID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password
		 FROM users WHERE id = $1`,
		userID,
	)
	return scanUser(row, "GetUserWithID")
}

// AddUser inserts u and fills in the generated id.
func AddUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.Name,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, queryError("AddUser", err)
	}
	return u, nil
}

func scanUser(row pgx.Row, op string) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, queryError(op, err)
	}
	return u, nil
}
