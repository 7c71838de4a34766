package httputil

import "github.com/gin-gonic/gin"

// RespondError отправляет сообщение об ошибке в едином формате и прекращает
// обработку запроса, чтобы последующие обработчики не выполнялись.
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// RespondNotAuthorized сообщает, что у пользователя нет активной сессии
// Telegram. Это ожидаемое состояние, а не ошибка: клиенту следует начать
// авторизацию заново.
func RespondNotAuthorized(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "telegram_not_authorized",
		"message": "Telegram account not authorized",
	})
}
