package telegram

import (
	"context"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
)

// Logout инвалидирует удалённую сессию: после него токен больше нельзя
// использовать для продолжения.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	_, err := s.withClient(ctx, sessionToken, func(ctx context.Context, client *telegram.Client) error {
		api := tg.NewClient(client)
		_, err := api.AuthLogOut(ctx)
		return err
	})
	if err != nil {
		return remoteErr("log out", err)
	}
	return nil
}
