package storage

import (
	"database/sql/driver"
	"strings"
	"testing"

	"tg_chats/models"
)

// TestGetTelegramAccount_NoRow проверяет, что отсутствие записи — это не
// ошибка, а nil: вызывающий код различает "нет сессии" и сбой БД.
func TestGetTelegramAccount_NoRow(t *testing.T) {
	db := openFakeDB(t)
	queryCols = []string{"id", "user_id", "session_token", "is_authorized"}

	acc, err := db.GetTelegramAccount(7)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if acc != nil {
		t.Fatalf("ожидался nil, получено %+v", acc)
	}
}

// TestGetTelegramAccount_Found проверяет разбор строки в модель.
func TestGetTelegramAccount_Found(t *testing.T) {
	db := openFakeDB(t)
	queryCols = []string{"id", "user_id", "session_token", "is_authorized"}
	queryVals = [][]driver.Value{{int64(3), int64(7), "s1", true}}

	acc, err := db.GetTelegramAccount(7)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if acc == nil || acc.ID != 3 || acc.UserID != 7 || acc.SessionToken != "s1" || !acc.IsAuthorized {
		t.Fatalf("неверная модель: %+v", acc)
	}
}

// TestCreateTelegramAccount проверяет, что INSERT возвращает запись с id.
func TestCreateTelegramAccount(t *testing.T) {
	db := openFakeDB(t)
	queryCols = []string{"id"}
	queryVals = [][]driver.Value{{int64(11)}}

	acc, err := db.CreateTelegramAccount(models.TelegramAccount{UserID: 7, SessionToken: "s1"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if acc.ID != 11 {
		t.Fatalf("ожидался id 11, получено %d", acc.ID)
	}
	if len(executedQueries) != 1 || !strings.Contains(executedQueries[0], "INSERT INTO telegram_accounts") {
		t.Fatalf("неожиданные запросы: %v", executedQueries)
	}
}

// TestUpdateTelegramAccount проверяет текст запроса обновления: токен и флаг
// перезаписываются по user_id.
func TestUpdateTelegramAccount(t *testing.T) {
	db := openFakeDB(t)

	if err := db.UpdateTelegramAccount(7, "s2", true); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(executedQueries) != 1 {
		t.Fatalf("ожидался 1 запрос, получено %d", len(executedQueries))
	}
	q := executedQueries[0]
	if !strings.Contains(q, "UPDATE telegram_accounts") || !strings.Contains(q, "WHERE user_id") {
		t.Fatalf("неверный запрос обновления: %s", q)
	}
}

// TestDeleteTelegramAccount проверяет удаление по user_id.
func TestDeleteTelegramAccount(t *testing.T) {
	db := openFakeDB(t)

	if err := db.DeleteTelegramAccount(7); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(executedQueries) != 1 || !strings.Contains(executedQueries[0], "DELETE FROM telegram_accounts") {
		t.Fatalf("неожиданные запросы: %v", executedQueries)
	}
}
