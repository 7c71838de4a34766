package telegram

import (
	"tg_chats/internal/usermutex"
	"tg_chats/models"
)

// saveAuthStep отражает результат шага авторизации в БД. Токен сохраняется
// безусловно, даже когда авторизация ещё не завершена: продолжить сессию
// можно только по последнему выданному токену. Запись на пользователя одна —
// создаётся при первом шаге, дальше обновляется.
//
// Шаги одного пользователя сериализуются мьютексом, чтобы параллельные
// запросы не перезатирали токены друг друга. Сбой записи не откатывает
// удалённый шаг: Telegram о нашей БД ничего не знает, расхождение устраняется
// повторной авторизацией.
func saveAuthStep(store AccountStore, userID int, sessionToken string, authorized bool) error {
	usermutex.Lock(userID)
	defer usermutex.Unlock(userID)

	acc, err := store.GetTelegramAccount(userID)
	if err != nil {
		return err
	}
	if acc == nil {
		_, err = store.CreateTelegramAccount(models.TelegramAccount{
			UserID:       userID,
			SessionToken: sessionToken,
			IsAuthorized: authorized,
		})
		return err
	}
	return store.UpdateTelegramAccount(userID, sessionToken, authorized)
}
