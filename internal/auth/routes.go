package auth

import "github.com/gin-gonic/gin"

// SetupRoutes регистрирует публичные маршруты регистрации и входа.
func SetupRoutes(rg *gin.RouterGroup, users UserStore, secret []byte) {
	h := NewHandler(users, secret)
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}
