package storage

import (
	"errors"

	"tg_chats/models"

	"github.com/lib/pq"
)

// ErrEmailTaken возвращается при попытке зарегистрировать занятый email.
var ErrEmailTaken = errors.New("email уже зарегистрирован")

func (db *DB) CreateUser(email, passwordHash string) (*models.User, error) {
	user := models.User{Email: email, PasswordHash: passwordHash}
	query := `
               INSERT INTO users (email, password_hash)
               VALUES ($1, $2)
               RETURNING id
       `
	err := db.Conn.QueryRow(query, email, passwordHash).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505 — unique_violation: email уже занят другим пользователем.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `
               SELECT id, email, password_hash
               FROM users
               WHERE email = $1
       `
	err := db.Conn.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
