package auth

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"tg_chats/internal/httputil"
	"tg_chats/models"
	"tg_chats/pkg/storage"
	"tg_chats/pkg/token"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserStore — операции с пользователями, нужные регистрации и входу.
// Реализуется pkg/storage.DB.
type UserStore interface {
	CreateUser(email, passwordHash string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

type Handler struct {
	Users  UserStore
	Secret []byte
}

func NewHandler(users UserStore, secret []byte) *Handler {
	return &Handler{Users: users, Secret: secret}
}

func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверные данные")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AUTH] ошибка хеширования пароля: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	if _, err := h.Users.CreateUser(input.Email, string(hash)); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			httputil.RespondError(c, http.StatusConflict, "Email уже зарегистрирован")
			return
		}
		log.Printf("[AUTH] ошибка создания пользователя: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Пользователь создан"})
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверные данные")
		return
	}

	user, err := h.Users.GetUserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.RespondError(c, http.StatusUnauthorized, "Неверные учетные данные")
			return
		}
		log.Printf("[AUTH] ошибка выборки пользователя: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		httputil.RespondError(c, http.StatusUnauthorized, "Неверные учетные данные")
		return
	}

	access, err := token.Issue(h.Secret, user.Email)
	if err != nil {
		log.Printf("[AUTH] ошибка выпуска токена: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access, "token_type": "Bearer"})
}
