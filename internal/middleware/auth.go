package middleware

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"tg_chats/internal/httputil"
	"tg_chats/models"
	"tg_chats/pkg/token"

	"github.com/gin-gonic/gin"
)

// userKey — ключ, под которым авторизованный пользователь лежит в контексте gin.
const userKey = "currentUser"

// UserStore отдаёт пользователя по email. Реализуется pkg/storage.DB.
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
}

// AuthRequired проверяет Bearer-токен и кладёт пользователя в контекст.
// Любая проблема с токеном или несуществующий пользователь — 401 до каких-либо
// обращений к Telegram или записей в БД.
func AuthRequired(users UserStore, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httputil.RespondError(c, http.StatusUnauthorized, "Требуется авторизация")
			return
		}
		email, err := token.Verify(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httputil.RespondError(c, http.StatusUnauthorized, "Недействительный токен")
			return
		}
		user, err := users.GetUserByEmail(email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.RespondError(c, http.StatusUnauthorized, "Пользователь не найден")
				return
			}
			log.Printf("[AUTH] ошибка выборки пользователя: %v", err)
			httputil.RespondError(c, http.StatusInternalServerError, "DB error")
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser достаёт пользователя, положенного AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetCurrentUser кладёт пользователя в контекст напрямую. Используется в тестах
// обработчиков, чтобы не поднимать всю цепочку с токенами.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
}
