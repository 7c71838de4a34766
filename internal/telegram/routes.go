package telegram

import "github.com/gin-gonic/gin"

// SetupRoutes регистрирует маршруты Telegram-интеграции. Группа должна быть
// закрыта middleware.AuthRequired: каждый обработчик ожидает пользователя
// в контексте.
func SetupRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/auth/start", h.StartAuth)
	rg.POST("/auth/verify-code", h.VerifyCode)
	rg.POST("/auth/verify-2fa", h.VerifyTwoFactor)
	rg.GET("/disconnect", h.Disconnect)
	rg.GET("/chats", h.Chats)
	rg.GET("/chats/:chat_id/messages", h.Messages)
}
