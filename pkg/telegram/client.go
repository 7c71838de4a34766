// Package telegram выполняет операции с Telegram через gotd/td.
//
// Сервис не хранит состояние между вызовами: каждая операция получает токен
// сессии на входе, создаёт собственного клиента, работает внутри client.Run
// и возвращает обновлённый токен на выходе. Соединение закрывается при выходе
// из Run на любом пути, в том числе при ошибке.
package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"

	"golang.org/x/net/proxy"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
)

// Proxy описывает необязательный SOCKS5-прокси для подключения к Telegram.
type Proxy struct {
	Addr     string
	Login    string
	Password string
}

type Service struct {
	apiID   int
	apiHash string
	proxy   *Proxy
}

func NewService(apiID int, apiHash string, p *Proxy) *Service {
	return &Service{apiID: apiID, apiHash: apiHash, proxy: p}
}

// tokenStorage — session.Storage поверх строки токена. Клиент записывает сюда
// обновлённую сессию, а после завершения операции она снова упаковывается
// в строку.
type tokenStorage struct {
	mu   sync.Mutex
	data []byte
}

func newTokenStorage(token string) (*tokenStorage, error) {
	if token == "" {
		return &tokenStorage{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("некорректный токен сессии: %w", err)
	}
	return &tokenStorage{data: data}, nil
}

func (s *tokenStorage) LoadSession(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return nil, session.ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *tokenStorage) StoreSession(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data[:0], data...)
	return nil
}

// Token возвращает текущую сессию в виде строки.
func (s *tokenStorage) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(s.data)
}

// withClient создаёт клиента, выполняет fn внутри client.Run и возвращает
// обновлённый токен сессии.
func (s *Service) withClient(ctx context.Context, sessionToken string, fn func(ctx context.Context, client *telegram.Client) error) (string, error) {
	storage, err := newTokenStorage(sessionToken)
	if err != nil {
		return "", err
	}

	opts := telegram.Options{SessionStorage: storage}
	if s.proxy != nil && s.proxy.Addr != "" {
		var auth *proxy.Auth
		if s.proxy.Login != "" || s.proxy.Password != "" {
			auth = &proxy.Auth{User: s.proxy.Login, Password: s.proxy.Password}
		}
		d, err := proxy.SOCKS5("tcp", s.proxy.Addr, auth, proxy.Direct)
		if err != nil {
			return "", fmt.Errorf("proxy dialer: %w", err)
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return "", fmt.Errorf("proxy dialer missing context")
		}
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		log.Printf("[PROXY] подключение к Telegram через %s", s.proxy.Addr)
	}

	client := telegram.NewClient(s.apiID, s.apiHash, opts)
	runErr := client.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, client)
	})
	// Токен возвращаем и при ошибке: Telegram мог обновить сессию до сбоя,
	// и терять её нельзя.
	return storage.Token(), runErr
}
