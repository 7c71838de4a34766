// Package usermutex сериализует сохранение результатов авторизации:
// два параллельных шага одного пользователя не должны перезатирать
// токены сессии друг друга.
package usermutex

import "sync"

var (
	globalMu  sync.Mutex
	userLocks = make(map[int]*sync.Mutex)
)

// Lock захватывает мьютекс пользователя, дожидаясь его освобождения.
func Lock(userID int) {
	globalMu.Lock()
	lock, ok := userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		userLocks[userID] = lock
	}
	globalMu.Unlock()

	lock.Lock()
}

// Unlock освобождает мьютекс пользователя.
func Unlock(userID int) {
	globalMu.Lock()
	lock := userLocks[userID]
	globalMu.Unlock()
	if lock != nil {
		lock.Unlock()
	}
}
