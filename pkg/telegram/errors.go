package telegram

import (
	"errors"
	"fmt"

	"github.com/gotd/td/tgerr"
)

// ErrInvalidCode означает, что Telegram отклонил код подтверждения.
// Пользователь может запросить новый код и повторить попытку.
var ErrInvalidCode = errors.New("неверный код подтверждения")

// RemoteError — любая прочая ошибка взаимодействия с Telegram: сеть,
// протокол, отклонённый облачный пароль.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("telegram %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func remoteErr(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}

// isInvalidCode распознаёт отказ Telegram по коду подтверждения.
func isInvalidCode(err error) bool {
	return tgerr.Is(err, "PHONE_CODE_INVALID")
}
