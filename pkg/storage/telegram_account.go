package storage

import (
	"database/sql"

	"tg_chats/models"
)

// GetTelegramAccount возвращает запись сессии пользователя или nil, если её нет.
func (db *DB) GetTelegramAccount(userID int) (*models.TelegramAccount, error) {
	var acc models.TelegramAccount
	query := `
               SELECT id, user_id, session_token, is_authorized
               FROM telegram_accounts
               WHERE user_id = $1
       `
	err := db.Conn.QueryRow(query, userID).Scan(&acc.ID, &acc.UserID, &acc.SessionToken, &acc.IsAuthorized)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateTelegramAccount создаёт запись сессии. Одну запись на пользователя
// гарантирует уникальный индекс по user_id.
func (db *DB) CreateTelegramAccount(acc models.TelegramAccount) (*models.TelegramAccount, error) {
	query := `
               INSERT INTO telegram_accounts (user_id, session_token, is_authorized)
               VALUES ($1, $2, $3)
               RETURNING id
       `
	err := db.Conn.QueryRow(query, acc.UserID, acc.SessionToken, acc.IsAuthorized).Scan(&acc.ID)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// UpdateTelegramAccount безусловно перезаписывает токен и флаг авторизации.
// Токен сохраняется даже до завершения авторизации: следующий шаг сможет
// продолжить сессию только по последнему токену.
func (db *DB) UpdateTelegramAccount(userID int, sessionToken string, isAuthorized bool) error {
	query := `
               UPDATE telegram_accounts
               SET session_token = $1, is_authorized = $2
               WHERE user_id = $3
       `
	_, err := db.Conn.Exec(query, sessionToken, isAuthorized, userID)
	return err
}

// DeleteTelegramAccount удаляет запись сессии пользователя.
func (db *DB) DeleteTelegramAccount(userID int) error {
	_, err := db.Conn.Exec(`DELETE FROM telegram_accounts WHERE user_id = $1`, userID)
	return err
}
