package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// SignInStatus — результат шага авторизации.
type SignInStatus int

const (
	// StatusSuccess — авторизация завершена полностью.
	StatusSuccess SignInStatus = iota
	// StatusTwoFactorRequired — после кода требуется облачный пароль.
	StatusTwoFactorRequired
)

// StartResult — итог запроса кода подтверждения.
type StartResult struct {
	PhoneCodeHash string
	SessionToken  string
}

// SignInResult — итог подтверждения кода или облачного пароля.
type SignInResult struct {
	Status       SignInStatus
	SessionToken string
}

// StartAuthorization открывает новую сессию и запрашивает код для номера.
// Возвращённый токен нужно сохранить: без него следующий шаг не сможет
// продолжить сессию.
func (s *Service) StartAuthorization(ctx context.Context, phone string) (StartResult, error) {
	var codeHash string
	token, err := s.withClient(ctx, "", func(ctx context.Context, client *telegram.Client) error {
		sentCode, err := client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
		if err != nil {
			return err
		}
		sent, ok := sentCode.(*tg.AuthSentCode)
		if !ok {
			log.Printf("[TELEGRAM AUTH] неожиданный тип ответа SendCode: %T", sentCode)
			return fmt.Errorf("unexpected sent code type: %T", sentCode)
		}
		codeHash = sent.PhoneCodeHash
		return nil
	})
	if err != nil {
		return StartResult{}, remoteErr("send code", err)
	}
	log.Printf("[TELEGRAM AUTH] код отправлен на номер %s", phone)
	return StartResult{PhoneCodeHash: codeHash, SessionToken: token}, nil
}

// VerifyCode подтверждает код. Если на аккаунте настроен облачный пароль,
// возвращается StatusTwoFactorRequired, и следующий шаг — VerifyPassword
// с токеном из этого результата.
func (s *Service) VerifyCode(ctx context.Context, phone, code, codeHash, sessionToken string) (SignInResult, error) {
	needPassword := false
	token, err := s.withClient(ctx, sessionToken, func(ctx context.Context, client *telegram.Client) error {
		if _, err := client.Auth().SignIn(ctx, phone, code, codeHash); err != nil {
			if errors.Is(err, auth.ErrPasswordAuthNeeded) {
				needPassword = true
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isInvalidCode(err) {
			return SignInResult{}, ErrInvalidCode
		}
		return SignInResult{}, remoteErr("sign in", err)
	}
	if needPassword {
		log.Printf("[TELEGRAM AUTH] номер %s: требуется облачный пароль", phone)
		return SignInResult{Status: StatusTwoFactorRequired, SessionToken: token}, nil
	}
	log.Printf("[TELEGRAM AUTH] номер %s авторизован", phone)
	return SignInResult{Status: StatusSuccess, SessionToken: token}, nil
}

// VerifyPassword завершает авторизацию облачным паролем. Telegram не отличает
// неверный пароль от прочих сбоев на уровне нашего результата, поэтому любая
// ошибка здесь — RemoteError.
func (s *Service) VerifyPassword(ctx context.Context, password, sessionToken string) (SignInResult, error) {
	token, err := s.withClient(ctx, sessionToken, func(ctx context.Context, client *telegram.Client) error {
		_, err := client.Auth().Password(ctx, password)
		return err
	})
	if err != nil {
		return SignInResult{}, remoteErr("password", err)
	}
	return SignInResult{Status: StatusSuccess, SessionToken: token}, nil
}
