package storage

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
)

// TestCreateUser проверяет, что INSERT возвращает пользователя с id.
func TestCreateUser(t *testing.T) {
	db := openFakeDB(t)
	queryCols = []string{"id"}
	queryVals = [][]driver.Value{{int64(42)}}

	user, err := db.CreateUser("oleg@example.com", "hash")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if user.ID != 42 || user.Email != "oleg@example.com" {
		t.Fatalf("неверная модель: %+v", user)
	}
}

// TestCreateUser_EmailTaken проверяет, что нарушение уникальности email
// превращается в ErrEmailTaken, а не в голую ошибку БД.
func TestCreateUser_EmailTaken(t *testing.T) {
	db := openFakeDB(t)
	queryErr = &pq.Error{Code: "23505"}

	if _, err := db.CreateUser("oleg@example.com", "hash"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("ожидался ErrEmailTaken, получено %v", err)
	}
}

// TestCreateUser_OtherError проверяет, что прочие ошибки БД не маскируются.
func TestCreateUser_OtherError(t *testing.T) {
	db := openFakeDB(t)
	queryErr = errors.New("connection refused")

	if _, err := db.CreateUser("oleg@example.com", "hash"); errors.Is(err, ErrEmailTaken) || err == nil {
		t.Fatalf("ожидалась исходная ошибка БД, получено %v", err)
	}
}

// TestGetUserByEmail проверяет разбор строки в модель.
func TestGetUserByEmail(t *testing.T) {
	db := openFakeDB(t)
	queryCols = []string{"id", "email", "password_hash"}
	queryVals = [][]driver.Value{{int64(1), "oleg@example.com", "hash"}}

	user, err := db.GetUserByEmail("oleg@example.com")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if user.ID != 1 || user.Email != "oleg@example.com" || user.PasswordHash != "hash" {
		t.Fatalf("неверная модель: %+v", user)
	}
}
