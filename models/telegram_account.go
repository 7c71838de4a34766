package models

// TelegramAccount хранит сессию Telegram, привязанную к пользователю.
// На одного пользователя допускается не более одной записи.
type TelegramAccount struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	// Сериализованная сессия Telegram. Обновляется после каждого шага
	// авторизации, наружу не отдаётся.
	SessionToken string `json:"-"`
	// Становится true только после полного завершения авторизации,
	// включая облачный пароль, если он настроен.
	IsAuthorized bool `json:"is_authorized"`
}
