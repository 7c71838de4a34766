package telegram

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"tg_chats/internal/httputil"
	"tg_chats/internal/middleware"
	"tg_chats/models"
	"tg_chats/pkg/token"
	tgsvc "tg_chats/pkg/telegram"

	"github.com/gin-gonic/gin"
)

// Authorizer — операции с Telegram, нужные обработчикам.
// Реализуется pkg/telegram.Service; в тестах подменяется фейком.
type Authorizer interface {
	StartAuthorization(ctx context.Context, phone string) (tgsvc.StartResult, error)
	VerifyCode(ctx context.Context, phone, code, codeHash, sessionToken string) (tgsvc.SignInResult, error)
	VerifyPassword(ctx context.Context, password, sessionToken string) (tgsvc.SignInResult, error)
	GetChats(ctx context.Context, sessionToken string) ([]models.ChatSummary, error)
	GetMessages(ctx context.Context, sessionToken string, chatID int64, limit int) ([]models.MessageSummary, error)
	Logout(ctx context.Context, sessionToken string) error
}

// AccountStore — персистентность записей сессий. Реализуется pkg/storage.DB.
type AccountStore interface {
	GetTelegramAccount(userID int) (*models.TelegramAccount, error)
	CreateTelegramAccount(acc models.TelegramAccount) (*models.TelegramAccount, error)
	UpdateTelegramAccount(userID int, sessionToken string, isAuthorized bool) error
	DeleteTelegramAccount(userID int) error
}

type Handler struct {
	Service Authorizer
	Store   AccountStore
	Secret  []byte
	// Timeout ограничивает каждое обращение к Telegram.
	Timeout time.Duration
}

func NewHandler(service Authorizer, store AccountStore, secret []byte, timeout time.Duration) *Handler {
	return &Handler{Service: service, Store: store, Secret: secret, Timeout: timeout}
}

func (h *Handler) opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}

// StartAuth запрашивает код подтверждения для номера и сохраняет выданный
// Telegram токен сессии. Запись создаётся уже на этом шаге: без сохранённого
// токена пользователь не сможет продолжить авторизацию после получения кода.
func (h *Handler) StartAuth(c *gin.Context) {
	var input struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверные данные")
		return
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := h.opContext(c)
	defer cancel()

	result, err := h.Service.StartAuthorization(ctx, input.PhoneNumber)
	if err != nil {
		log.Printf("[TELEGRAM] не удалось запросить код: %v", err)
		httputil.RespondError(c, http.StatusBadGateway, "Не удалось запросить код")
		return
	}

	if err := saveAuthStep(h.Store, user.ID, result.SessionToken, false); err != nil {
		log.Printf("[TELEGRAM] ошибка сохранения сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "code_sent",
		"phone_number":    input.PhoneNumber,
		"phone_code_hash": result.PhoneCodeHash,
		"session_token":   result.SessionToken,
	})
}

// VerifyCode подтверждает код из СМС или приложения. При неверном коде
// локальная запись не трогается: пользователь может запросить новый код.
func (h *Handler) VerifyCode(c *gin.Context) {
	var input struct {
		PhoneNumber   string `json:"phone_number" binding:"required"`
		PhoneCode     string `json:"phone_code" binding:"required"`
		PhoneCodeHash string `json:"phone_code_hash" binding:"required"`
		SessionToken  string `json:"session_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверные данные")
		return
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := h.opContext(c)
	defer cancel()

	result, err := h.Service.VerifyCode(ctx, input.PhoneNumber, input.PhoneCode, input.PhoneCodeHash, input.SessionToken)
	if err != nil {
		if errors.Is(err, tgsvc.ErrInvalidCode) {
			httputil.RespondError(c, http.StatusBadRequest, "Неверный код подтверждения")
			return
		}
		log.Printf("[TELEGRAM] ошибка подтверждения кода: %v", err)
		httputil.RespondError(c, http.StatusBadGateway, "Ошибка Telegram")
		return
	}

	authorized := result.Status == tgsvc.StatusSuccess
	if err := saveAuthStep(h.Store, user.ID, result.SessionToken, authorized); err != nil {
		log.Printf("[TELEGRAM] ошибка сохранения сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}

	status := "success"
	if !authorized {
		status = "2fa_required"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "session_token": result.SessionToken})
}

// VerifyTwoFactor завершает авторизацию облачным паролем.
func (h *Handler) VerifyTwoFactor(c *gin.Context) {
	var input struct {
		Password     string `json:"password" binding:"required"`
		SessionToken string `json:"session_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверные данные")
		return
	}
	user := middleware.CurrentUser(c)

	ctx, cancel := h.opContext(c)
	defer cancel()

	result, err := h.Service.VerifyPassword(ctx, input.Password, input.SessionToken)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка проверки пароля: %v", err)
		httputil.RespondError(c, http.StatusBadGateway, "Ошибка Telegram")
		return
	}

	if err := saveAuthStep(h.Store, user.ID, result.SessionToken, true); err != nil {
		log.Printf("[TELEGRAM] ошибка сохранения сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "session_token": result.SessionToken})
}

// Disconnect отключает аккаунт Telegram. Удалённый logout — best effort:
// локальная запись удаляется в любом случае, иначе пользователь навсегда
// останется с мёртвой сессией.
func (h *Handler) Disconnect(c *gin.Context) {
	user := middleware.CurrentUser(c)

	acc, err := h.Store.GetTelegramAccount(user.ID)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка выборки сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}
	if acc == nil || !acc.IsAuthorized {
		httputil.RespondNotAuthorized(c)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	if err := h.Service.Logout(ctx, acc.SessionToken); err != nil {
		log.Printf("[TELEGRAM] удалённый logout не удался: %v", err)
	}

	if err := h.Store.DeleteTelegramAccount(user.ID); err != nil {
		log.Printf("[TELEGRAM] ошибка удаления сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}

	access, err := token.Issue(h.Secret, user.Email)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка выпуска токена: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isTelegramAuth": false,
		"token":          access,
		"message":        "Telegram account disconnected",
	})
}

// Chats возвращает список диалогов авторизованного аккаунта.
func (h *Handler) Chats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	acc, err := h.Store.GetTelegramAccount(user.ID)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка выборки сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}
	if acc == nil || !acc.IsAuthorized {
		httputil.RespondNotAuthorized(c)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	chats, err := h.Service.GetChats(ctx, acc.SessionToken)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка получения чатов: %v", err)
		httputil.RespondError(c, http.StatusBadGateway, "Ошибка Telegram")
		return
	}

	c.JSON(http.StatusOK, chats)
}

// Messages возвращает до limit последних сообщений чата.
func (h *Handler) Messages(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный id чата")
		return
	}
	limit := tgsvc.DefaultMessagesLimit
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			httputil.RespondError(c, http.StatusBadRequest, "Неверный limit")
			return
		}
	}
	user := middleware.CurrentUser(c)

	acc, err := h.Store.GetTelegramAccount(user.ID)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка выборки сессии: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "DB error")
		return
	}
	if acc == nil || !acc.IsAuthorized {
		httputil.RespondNotAuthorized(c)
		return
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	messages, err := h.Service.GetMessages(ctx, acc.SessionToken, chatID, limit)
	if err != nil {
		log.Printf("[TELEGRAM] ошибка получения сообщений: %v", err)
		httputil.RespondError(c, http.StatusBadGateway, "Ошибка Telegram")
		return
	}

	c.JSON(http.StatusOK, messages)
}
